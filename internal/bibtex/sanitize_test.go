package bibtex

import "testing"

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"plain text", "plain text", "plain text"},
		{"doubled braces and markup", `{{Deep Learning}} for \textbf{Robotics}~Applications`, "Deep Learning for Robotics Applications"},
		{"enclosing double quotes", `"Quoted Title"`, "Quoted Title"},
		{"enclosing single quotes", `'Quoted Title'`, "Quoted Title"},
		{"mismatched quotes kept", `"Half quoted'`, `"Half quoted'`},
		{"nested quotes lose one layer", `"'hi'"`, `'hi'`},
		{"single brace layer", "{BERT} models", "BERT models"},
		{"nested braces", "{A {Nested {Deep}} Title}", "A Nested Deep Title"},
		{"emph", `An \emph{important} result`, "An important result"},
		{"textit", `An \textit{italic} word`, "An italic word"},
		{"cite dropped", `As shown \cite{smith2020} before`, "As shown before"},
		{"citep dropped", `Prior work \citep{a,b}.`, "Prior work ."},
		{"tilde to space", "Fig.~3", "Fig. 3"},
		{"stray backslashes", `R\&D \% done`, "R&D % done"},
		{"unknown command degrades", `\alpha-helix`, "alpha-helix"},
		{"unbalanced open brace", "{Unbalanced title", "Unbalanced title"},
		{"unbalanced close brace", "Unbalanced} title}", "Unbalanced title"},
		{"only braces", "{{}}{}", ""},
		{"whitespace collapse", "  Many \n\t spaces   here ", "Many spaces here"},
		{"unicode kept", "Ünïcödé {Tïtle}", "Ünïcödé Tïtle"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sanitize(tt.input)
			if got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitize_Idempotent(t *testing.T) {
	inputs := []string{
		`{{Deep Learning}} for \textbf{Robotics}~Applications`,
		"{A {Nested {Deep}} Title}",
		`As shown \cite{smith2020} before`,
		"  Many \n\t spaces   here ",
		"Plain",
		"{Unbalanced title",
		`\alpha-helix`,
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			once := Sanitize(in)
			twice := Sanitize(once)
			if once != twice {
				t.Errorf("Sanitize not idempotent: %q -> %q -> %q", in, once, twice)
			}
		})
	}
}

// Quotes come off one enclosing pair per call, so nested quoting is the one
// input where a second pass changes the result.
func TestSanitize_NestedQuotes(t *testing.T) {
	in := `"'Quoted Title'"`
	once := Sanitize(in)
	if once != `'Quoted Title'` {
		t.Errorf("Sanitize(%q) = %q, want %q", in, once, `'Quoted Title'`)
	}
	if twice := Sanitize(once); twice != "Quoted Title" {
		t.Errorf("Sanitize(%q) = %q, want %q", once, twice, "Quoted Title")
	}
}

func TestSanitize_Terminates(t *testing.T) {
	// Deeply nested and heavily unbalanced input must finish and never panic
	deep := ""
	for i := 0; i < 200; i++ {
		deep = "{" + deep + "x}"
	}
	inputs := []string{
		deep,
		"{{{{{{{{{{",
		"}}}}}}}}}}",
		"{}{}{}{}{}{{}}}{{",
		`\textbf{\emph{\cite{`,
		`\\\\\\`,
		"~~~~",
	}
	for _, in := range inputs {
		_ = Sanitize(in)
	}
}

func TestSanitizeOptional(t *testing.T) {
	e := Entry{Fields: []Field{{Name: "journal", Value: "{Nature}"}, {Name: "note", Value: ""}}}

	if got := SanitizeOptional(e, "journal"); got == nil || *got != "Nature" {
		t.Errorf("SanitizeOptional(journal) = %v, want Nature", got)
	}
	if got := SanitizeOptional(e, "note"); got == nil || *got != "" {
		t.Errorf("SanitizeOptional(note) = %v, want present empty string", got)
	}
	if got := SanitizeOptional(e, "volume"); got != nil {
		t.Errorf("SanitizeOptional(volume) = %q, want nil", *got)
	}
}
