package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/weisyn/ethwallet/client/core/output"
	"github.com/weisyn/ethwallet/internal/app"
)

// credentialNames 一组口令相关标志的名称
type credentialNames struct {
	pass, passShort       string
	nopass, nopassShort   string
	keyfile, keyfileShort string
	iter, iterShort       string
}

var defaultCredentialNames = credentialNames{
	pass: "pass", passShort: "p",
	nopass: "nopass", nopassShort: "n",
	keyfile: "keyfile", keyfileShort: "k",
	iter: "iter", iterShort: "i",
}

// credentials 命令行给出的密码、keyfile 与哈希次数
type credentials struct {
	names    credentialNames
	password string
	nopass   bool
	keyfile  string
	iter     int
}

// register 注册标志，what 用于帮助文本，例如 "当前账户"
func (c *credentials) register(cmd *cobra.Command, names credentialNames, what string) {
	c.names = names
	flags := cmd.Flags()
	flags.StringVarP(&c.password, names.pass, names.passShort, "", what+"密码")
	flags.BoolVarP(&c.nopass, names.nopass, names.nopassShort, false, what+"使用空密码")
	flags.StringVarP(&c.keyfile, names.keyfile, names.keyfileShort, "", what+"keyfile")
	flags.IntVarP(&c.iter, names.iter, names.iterShort, 0, what+"keyfile 哈希次数 (默认取配置)")
}

// passcode 得到 passcode
//
// 没有给出 --pass 或 --nopass 时交互输入；confirmPrompt 非空表示新密码需要确认。
// 返回值 hasPassword 表示密码非空，用于输出摘要。
func (c *credentials) passcode(cmd *cobra.Command, env *cliEnv, w *app.Wallet, prompt, confirmPrompt string) (passcode []byte, hasPassword bool, err error) {
	var password []byte
	switch {
	case c.nopass:
		password = []byte{}
	case cmd.Flags().Changed(c.names.pass):
		password = []byte(c.password)
	default:
		if password, err = env.prompt.password(prompt, confirmPrompt); err != nil {
			return nil, false, err
		}
	}

	iter := w.Passcode.DefaultIterations()
	if cmd.Flags().Changed(c.names.iter) {
		iter = c.iter
	}

	passcode, err = w.Passcode.DeriveFromPath(password, c.keyfile, iter)
	if err != nil {
		return nil, false, fmt.Errorf("keyfile %s: %w", c.keyfile, err)
	}
	return passcode, len(password) > 0, nil
}

// summary 输出时隐藏密码
func (c *credentials) summary(cmd *cobra.Command, label string, hasPassword bool) []output.KeyValue {
	var rows []output.KeyValue
	if hasPassword {
		rows = append(rows, row(label+"password:", "*****"))
	}
	if c.keyfile != "" {
		rows = append(rows, row(label+"keyfile:", c.keyfile))
		if cmd.Flags().Changed(c.names.iter) {
			rows = append(rows, row(label+"keyfile iterations:", strconv.Itoa(c.iter)))
		}
	}
	return rows
}

// row 构造一行键值
func row(key, value string) output.KeyValue {
	return output.KeyValue{Key: key, Value: value}
}
