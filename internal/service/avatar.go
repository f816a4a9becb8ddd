package service

import "github.com/voidAlex/student-roll-call/internal/infrastructure/randomizer"

var avatarEmojis = []string{
	"😀", "😃", "😄", "😁", "😆", "😅", "🙂", "😉", "😊", "😇",
	"🤩", "😋", "😛", "🤗", "🤔", "🐶", "🐱", "🐭", "🐹", "🐰",
	"🦊", "🐻", "🐼", "🐨", "🐯", "🦁", "🐮", "🐷", "🐸", "🐵",
	"🐔", "🐧", "🐤", "🦄", "🐝", "🦋", "🐞", "🍎", "🍊", "🍋",
	"🍌", "🍉", "🍇", "🍓", "🍒", "🍑", "🍍", "🥝", "🥕", "🌽",
	"⚽", "🏀", "🏈", "⚾", "🎾", "🏐", "🏓", "🏸", "🎯", "🎲",
	"🌸", "🌺", "🌻", "🌷", "🌹", "🍀", "🌳", "🌵", "🌈", "⭐",
}

// randomAvatar выбирает emoji-аватар для ученика без своего аватара.
func randomAvatar(rnd randomizer.Randomizer) string {
	return avatarEmojis[rnd.Intn(len(avatarEmojis))]
}
