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

// prompter 交互输入
//
// 标准输入是终端时密码不回显；否则按行读取，便于脚本和测试通过管道提供输入。
type prompter struct {
	in     *bufio.Reader
	out    io.Writer
	fd     int
	isTerm bool
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	p := &prompter{in: bufio.NewReader(in), out: out}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		p.fd = int(f.Fd())
		p.isTerm = true
	}
	return p
}

// line 读取一行，去掉行尾换行
func (p *prompter) line(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	s, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && s != "") {
		if errors.Is(err, io.EOF) {
			return "", fmt.Errorf("读取输入失败: %w", io.ErrUnexpectedEOF)
		}
		return "", fmt.Errorf("读取输入失败: %w", err)
	}
	return strings.TrimRight(s, "\r\n"), nil
}

// secret 读取不回显的输入
func (p *prompter) secret(prompt string) ([]byte, error) {
	if !p.isTerm {
		s, err := p.line(prompt)
		if err != nil {
			return nil, err
		}
		return []byte(s), nil
	}
	fmt.Fprint(p.out, prompt)
	b, err := term.ReadPassword(p.fd)
	fmt.Fprintln(p.out)
	if err != nil {
		return nil, fmt.Errorf("读取密码失败: %w", err)
	}
	return b, nil
}

// password 读取非空密码，confirmPrompt 非空时要求再输入一次
func (p *prompter) password(prompt, confirmPrompt string) ([]byte, error) {
	for {
		pw, err := p.secret(prompt)
		if err != nil {
			return nil, err
		}
		if len(pw) == 0 {
			continue
		}
		if confirmPrompt == "" {
			return pw, nil
		}
		again, err := p.secret(confirmPrompt)
		if err != nil {
			return nil, err
		}
		if string(again) == string(pw) {
			return pw, nil
		}
		fmt.Fprintln(p.out, "\nEntries do not match.\nReenter password.")
	}
}

// confirm 询问 y/N，只有 y 或 Y 视为同意
func (p *prompter) confirm(prompt string) (bool, error) {
	answer, err := p.line(prompt + " (y/N) ")
	if err != nil {
		return false, err
	}
	return strings.EqualFold(strings.TrimSpace(answer), "y"), nil
}

// confirmOverwrite 目标文件存在时询问是否覆盖
func (p *prompter) confirmOverwrite(path string) (bool, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return true, nil
		}
		return false, err
	}
	fmt.Fprintln(p.out, "Warning! Existing file will be overwritten:", path)
	return p.confirm("Continue?")
}
