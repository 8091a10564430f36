package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/weisyn/ethwallet/client/core/output"
	"github.com/weisyn/ethwallet/internal/app"
	"github.com/weisyn/ethwallet/internal/core/keystore"
	"github.com/weisyn/ethwallet/pkg/types"
)

// newCreateCmd 创建新账户
func newCreateCmd(env *cliEnv) *cobra.Command {
	var (
		cred     credentials
		keyInput string
	)
	cmd := &cobra.Command{
		Use:     "create [file]",
		Aliases: []string{"ca"},
		Short:   "创建新账户",
		Long: `生成私钥（或从明文文件导入），用口令加密后写入 keystore 文件。

未给出文件名时使用 UTC--<时间>--<地址>。

示例：
  ethwallet create account.json
  ethwallet create account.json --keyfile secret.bin
  ethwallet create account.json --getkey plain_key.txt`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := env.getWallet()
			if err != nil {
				return err
			}

			var file string
			if len(args) == 1 {
				file = args[0]
				ok, err := env.prompt.confirmOverwrite(file)
				if err != nil || !ok {
					return cancelled(env, err)
				}
			}

			var privateKey []byte
			if keyInput != "" {
				if privateKey, err = readPlainKey(w, keyInput); err != nil {
					return err
				}
			}

			passcode, hasPassword, err := cred.passcode(cmd, env, w, "Enter password: ", "Confirm password: ")
			if err != nil {
				return err
			}

			record, err := w.Keystore.Create(passcode, privateKey)
			if err != nil {
				return fmt.Errorf("创建账户失败: %w", err)
			}
			address, err := w.Keystore.AddressOf(record)
			if err != nil {
				return err
			}
			if file == "" {
				file = keystore.DefaultFileName(address, w.Clock.Now())
			}
			if err := keystore.WriteFile(file, record); err != nil {
				return err
			}
			checksum, err := w.Address.ToChecksumAddress(hex.EncodeToString(address))
			if err != nil {
				return err
			}

			if env.formatter.IsStructured() {
				return env.formatter.Print(map[string]string{"file": file, "address": checksum})
			}
			rows := []output.KeyValue{row("Account file:", file)}
			rows = append(rows, cred.summary(cmd, "Account ", hasPassword)...)
			if keyInput != "" {
				rows = append(rows, row("Private key from:", keyInput))
			}
			if err := env.formatter.PrintKeyValues("New account parameters", rows); err != nil {
				return err
			}
			if err := printAddress(env, "Address", checksum); err != nil {
				return err
			}
			env.formatter.PrintSuccess("New account successfully created!")
			return nil
		},
	}
	cred.register(cmd, defaultCredentialNames, "")
	cmd.Flags().StringVarP(&keyInput, "getkey", "g", "", "从明文私钥文件导入（十六进制，可带 0x）")
	return cmd
}

// readPlainKey 读取明文私钥文件
func readPlainKey(w *app.Wallet, path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s := strings.TrimSpace(string(data))
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	key, err := hex.DecodeString(s)
	if err != nil || !w.Keys.IsValidPrivateKey(key) {
		return nil, types.Validationf("create.getkey", "private key is invalid: %s", path)
	}
	return key, nil
}

// newUpdateCmd 修改账户口令
func newUpdateCmd(env *cliEnv) *cobra.Command {
	var (
		current, updated credentials
		fileNew          string
		verbose          bool
	)
	cmd := &cobra.Command{
		Use:     "update <accountFile>",
		Aliases: []string{"cp"},
		Short:   "修改账户口令",
		Long: `用新的密码和/或 keyfile 重新加密账户。

默认覆盖原文件；--filenew 写入新文件，原文件保留。
--verbose 会在确认后显示私钥等敏感信息。`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file := args[0]
			w, err := env.getWallet()
			if err != nil {
				return err
			}
			record, err := keystore.ReadFile(file)
			if err != nil {
				return err
			}

			dest := file
			if fileNew != "" {
				ok, err := env.prompt.confirmOverwrite(fileNew)
				if err != nil || !ok {
					return cancelled(env, err)
				}
				dest = fileNew
			}

			oldPasscode, hadPassword, err := current.passcode(cmd, env, w, "Enter current password: ", "")
			if err != nil {
				return err
			}
			privateKey, ok, err := w.Keystore.Open(record, oldPasscode)
			if err != nil {
				return err
			}
			if !ok {
				return &wrongPasswordError{file: file}
			}

			newPasscode, hasPassword, err := updated.passcode(cmd, env, w, "Specify new password: ", "Confirm new password: ")
			if err != nil {
				return err
			}
			next, err := w.Keystore.Create(newPasscode, privateKey)
			if err != nil {
				return err
			}
			if err := keystore.WriteFile(dest, next); err != nil {
				return err
			}

			if env.formatter.IsStructured() {
				return env.formatter.Print(map[string]string{"previousFile": file, "file": dest})
			}

			var rows []output.KeyValue
			if dest == file {
				rows = append(rows, row("Account file:", file))
			} else {
				rows = append(rows, row("Previous account file:", file))
			}
			rows = append(rows, current.summary(cmd, "Previous ", hadPassword)...)
			if dest != file {
				rows = append(rows, row("New account file:", dest))
			}
			rows = append(rows, updated.summary(cmd, "New ", hasPassword)...)
			if err := env.formatter.PrintKeyValues("Altered passcode parameters", rows); err != nil {
				return err
			}
			env.formatter.PrintSuccess("Passcode successfully updated!")

			if !verbose {
				return nil
			}
			sure, err := env.prompt.confirm("Verbose mode will display sensitive information. Are you sure you want to continue?")
			if err != nil {
				return err
			}
			if !sure {
				env.formatter.PrintInfo("Verbose output cancelled.")
				return nil
			}
			return compareAccounts(env, w, accountView{file, record, oldPasscode}, accountView{dest, next, newPasscode})
		},
	}
	current.register(cmd, credentialNames{
		pass: "passold", passShort: "P",
		nopass: "nopassold", nopassShort: "N",
		keyfile: "keyfileold", keyfileShort: "K",
		iter: "iterold", iterShort: "I",
	}, "当前")
	updated.register(cmd, credentialNames{
		pass: "passnew", passShort: "p",
		nopass: "nopassnew", nopassShort: "n",
		keyfile: "keyfilenew", keyfileShort: "k",
		iter: "iternew", iterShort: "i",
	}, "新")
	cmd.Flags().StringVarP(&fileNew, "filenew", "f", "", "写入新文件，原文件保留")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "显示新旧账户对比（含敏感信息）")
	return cmd
}

// accountView 对比输出用的账户信息
type accountView struct {
	file     string
	record   *keystore.Record
	passcode []byte
}

// compareAccounts 重新打开两个账户并逐项对比
func compareAccounts(env *cliEnv, w *app.Wallet, views ...accountView) error {
	var files, addresses, keys, passcodes []string
	for _, v := range views {
		key, ok, err := w.Keystore.Open(v.record, v.passcode)
		if err != nil {
			return err
		}
		if !ok {
			return &wrongPasswordError{file: v.file}
		}
		address, err := w.Address.ToChecksumAddress(v.record.Address)
		if err != nil {
			return err
		}
		files = append(files, v.file)
		addresses = append(addresses, address)
		keys = append(keys, "0x"+hex.EncodeToString(key))
		passcodes = append(passcodes, "0x"+hex.EncodeToString(v.passcode))
	}

	header := []string{"", "Old", "New"}
	rows := [][]string{
		append([]string{"File"}, files...),
		append([]string{"Address"}, addresses...),
		append([]string{"Private key"}, keys...),
		append([]string{"Passcode"}, passcodes...),
	}
	if err := env.formatter.PrintTable(header, rows); err != nil {
		return err
	}
	for i, v := range views {
		data, err := v.record.Marshal()
		if err != nil {
			return err
		}
		if err := env.formatter.Section(header[i+1] + " account"); err != nil {
			return err
		}
		if err := env.formatter.Line(string(data)); err != nil {
			return err
		}
	}
	return nil
}

// newGetAddressCmd 显示账户地址，不需要口令
func newGetAddressCmd(env *cliEnv) *cobra.Command {
	return &cobra.Command{
		Use:     "getaddress <accountFile>",
		Aliases: []string{"ga"},
		Short:   "显示账户地址",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := env.getWallet()
			if err != nil {
				return err
			}
			record, err := keystore.ReadFile(args[0])
			if err != nil {
				return err
			}
			address, err := w.Keystore.AddressOf(record)
			if err != nil {
				return err
			}
			checksum, err := w.Address.ToChecksumAddress(hex.EncodeToString(address))
			if err != nil {
				return err
			}
			if env.formatter.IsStructured() {
				return env.formatter.Print(map[string]string{"file": args[0], "address": checksum})
			}
			return printAddress(env, "Address for account "+args[0], checksum)
		},
	}
}

// newGetKeyCmd 解密并显示私钥
func newGetKeyCmd(env *cliEnv) *cobra.Command {
	var cred credentials
	cmd := &cobra.Command{
		Use:     "getkey <accountFile>",
		Aliases: []string{"gp"},
		Short:   "显示账户私钥",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file := args[0]
			w, err := env.getWallet()
			if err != nil {
				return err
			}
			record, err := keystore.ReadFile(file)
			if err != nil {
				return err
			}
			passcode, _, err := cred.passcode(cmd, env, w, "Enter password: ", "")
			if err != nil {
				return err
			}
			key, ok, err := w.Keystore.Open(record, passcode)
			if err != nil {
				return err
			}
			if !ok {
				return &wrongPasswordError{file: file}
			}

			keyHex := "0x" + hex.EncodeToString(key)
			if env.formatter.IsStructured() {
				return env.formatter.Print(map[string]string{"file": file, "privateKey": keyHex})
			}
			if err := env.formatter.Section("Private key for account " + file); err != nil {
				return err
			}
			return env.formatter.Line(keyHex)
		},
	}
	cred.register(cmd, defaultCredentialNames, "")
	return cmd
}

// printAddress 打印标题和地址
func printAddress(env *cliEnv, title, address string) error {
	if err := env.formatter.Section(title); err != nil {
		return err
	}
	return env.formatter.Line(address)
}

// cancelled 用户拒绝覆盖时正常返回
func cancelled(env *cliEnv, err error) error {
	if err != nil {
		return err
	}
	env.formatter.PrintInfo("Cancelled.")
	return nil
}
