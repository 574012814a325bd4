package palette

// Token is one selectable emoji.
type Token string

// Seed provides the default emoji grid shown on the entry screen.
func Seed() []Token {
	return []Token{
		"😀", "😢", "😡", "😱", "😃", "😰", "😴", "😊", "😍", "🥳",
		"😆", "😅", "😇", "🤗", "🤔", "😣", "🙄", "😕", "🤪", "😖",
		"😩", "🥵", "🥶", "😤", "😎", "😞", "😜", "🤫", "🤐", "😟",
		"🥺", "😌", "💔", "🤑", "😚", "🧐", "😋", "😶", "🤥", "😪",
		"🤧", "😲", "💩", "🥰", "😐", "😳", "🙃", "😬", "😒", "🤮",
		"😯", "😠", "🤯", "🥴", "💀", "👻", "👽", "👾", "😷", "🤒",
		"🤕", "🤢", "💖", "💘", "💝", "💞", "💋", "💟", "🧡", "💛",
		"💚", "💙", "💜", "🤍", "🖤", "🤎", "😺", "😸", "😹", "😻",
		"😼", "🙀", "😾", "😿", "🐵", "🙈", "🙉", "🙊", "🤖", "👺",
		"👹", "☠️", "🧟", "💣", "💬", "🗯️",
	}
}

// Strings converts tokens to plain strings for prompt building and storage.
func Strings(tokens []Token) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = string(t)
	}
	return out
}
