package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// prompter asks for values missing from the command line. Secrets are read
// without echo when stdin is a terminal.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
	fd  int
}

func newPrompter(stdin io.Reader, out io.Writer) *prompter {
	fd := -1
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fd = int(f.Fd())
	}
	return &prompter{in: bufio.NewReader(stdin), out: out, fd: fd}
}

func (p *prompter) line(label string) (string, error) {
	fmt.Fprint(p.out, label+": ")
	s, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && s != "") {
		return "", fmt.Errorf("read %s: %w", strings.ToLower(label), err)
	}
	return strings.TrimSpace(s), nil
}

func (p *prompter) secret(label string) (string, error) {
	if p.fd < 0 {
		return p.line(label)
	}
	fmt.Fprint(p.out, label+": ")
	b, err := term.ReadPassword(p.fd)
	fmt.Fprintln(p.out)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", strings.ToLower(label), err)
	}
	return string(b), nil
}

// fill prompts for *v when it is empty.
func (p *prompter) fill(v *string, label string) error {
	if *v != "" {
		return nil
	}
	s, err := p.line(label)
	if err != nil {
		return err
	}
	*v = s
	return nil
}

func (p *prompter) fillSecret(v *string, label string) error {
	if *v != "" {
		return nil
	}
	s, err := p.secret(label)
	if err != nil {
		return err
	}
	*v = s
	return nil
}
