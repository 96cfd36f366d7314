package chat

// Button carries either a callback token or a URL.
type Button struct {
	Label string
	Token string
	URL   string
}

// Keyboard is an inline button layout, row by row.
type Keyboard [][]Button

func (k Keyboard) Empty() bool {
	return len(k) == 0
}

// Builder assembles inline keyboards.
type Builder struct {
	rows Keyboard
}

func NewBuilder() *Builder {
	return &Builder{rows: make(Keyboard, 0)}
}

// Row appends a row; empty rows are ignored.
func (b *Builder) Row(buttons ...Button) *Builder {
	if len(buttons) > 0 {
		b.rows = append(b.rows, buttons)
	}
	return b
}

// Column appends each button on its own row.
func (b *Builder) Column(buttons ...Button) *Builder {
	for _, btn := range buttons {
		b.rows = append(b.rows, []Button{btn})
	}
	return b
}

func (b *Builder) Build() Keyboard {
	return b.rows
}

func CallbackButton(label, token string) Button {
	return Button{Label: label, Token: token}
}

func URLButton(label, url string) Button {
	return Button{Label: label, URL: url}
}
