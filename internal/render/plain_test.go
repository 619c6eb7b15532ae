package render

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func newTestPlain(t *testing.T, animate bool) (*Plain, *bytes.Buffer) {
	t.Helper()
	saved := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = saved })

	var buf bytes.Buffer
	return NewPlain(&buf, PlainOptions{Prompt: "$ ", Animate: animate, Terminal: true}), &buf
}

func TestPlain_WriteLine(t *testing.T) {
	p, buf := newTestPlain(t, false)

	p.WriteLine(Text("file1.txt  notes.md  script.sh"), false, Options{})
	p.WriteLine(Content{Text: "foo not recognized", Class: ClassError}, true, Options{})

	want := "file1.txt  notes.md  script.sh\nfoo not recognized\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestPlain_AnimatedTyping(t *testing.T) {
	p, buf := newTestPlain(t, true)

	p.WriteLine(Text("a\nb"), true, Options{BaseDelay: 1})

	if buf.String() != "a\nb\n" {
		t.Errorf("output = %q", buf.String())
	}
}

func TestPlain_EchoAndFallback(t *testing.T) {
	p, buf := newTestPlain(t, false)

	id := p.OpenLine()
	if buf.Len() != 0 {
		t.Fatal("OpenLine should not print")
	}
	if err := p.AnimateText(context.Background(), id, "ls", Options{Cursor: true}); err != nil {
		t.Fatalf("AnimateText() error = %v", err)
	}

	id = p.OpenLine()
	p.SetText(id, "test")
	p.SetText(id, "twice")

	if buf.String() != "ls\ntest\n" {
		t.Errorf("output = %q", buf.String())
	}
}

func TestPlain_PromptAndClear(t *testing.T) {
	p, buf := newTestPlain(t, false)

	p.ShowPrompt()
	p.ShowPrompt()
	p.HidePrompt()
	p.ClearOutput()

	got := buf.String()
	if !strings.HasPrefix(got, "$ $ ") {
		t.Errorf("output = %q, want prompt printed per show", got)
	}
	if !strings.Contains(got, "\x1b[2J") {
		t.Errorf("output = %q, want screen erase", got)
	}
}

func TestPlain_NoControlBytesWithoutTerminal(t *testing.T) {
	saved := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = saved })

	var buf bytes.Buffer
	p := NewPlain(&buf, PlainOptions{Prompt: "$ ", Animate: true})

	id := p.OpenLine()
	if err := p.AnimateText(context.Background(), id, "ls", Options{BaseDelay: EchoBaseDelay, Cursor: true}); err != nil {
		t.Fatalf("AnimateText() error = %v", err)
	}
	p.WriteLine(Text("started"), true, Options{})
	p.ClearOutput()

	if got, want := buf.String(), "ls\nstarted\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestIsTerminal_Buffer(t *testing.T) {
	if IsTerminal(&bytes.Buffer{}) {
		t.Error("IsTerminal(buffer) = true")
	}
}
