package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/weisyn/ethwallet/client/core/output"
	"github.com/weisyn/ethwallet/internal/core/keystore"
	"github.com/weisyn/ethwallet/internal/core/tx"
	"github.com/weisyn/ethwallet/pkg/types"
)

// 输出详细程度
const (
	verbosityQuiet   = -1 // 只输出签名后的交易
	verbosityDefault = 1
	verbosityMax     = 2
)

// newTemplateCmd 写出交易参数模板
func newTemplateCmd(env *cliEnv) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:     "template",
		Aliases: []string{"gt"},
		Short:   "创建交易参数模板",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := env.prompt.confirmOverwrite(file)
			if err != nil || !ok {
				return cancelled(env, err)
			}
			data, err := tx.DefaultParams().Marshal()
			if err != nil {
				return err
			}
			if err := os.WriteFile(file, append(data, '\n'), 0o644); err != nil {
				return fmt.Errorf("写入模板失败: %w", err)
			}
			if env.formatter.IsStructured() {
				return env.formatter.Print(map[string]string{"file": file})
			}
			if err := env.formatter.PrintKeyValues("", []output.KeyValue{row("Template file:", file)}); err != nil {
				return err
			}
			env.formatter.PrintSuccess("Transaction template successfully created!")
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", tx.DefaultParamsFile, "模板文件名")
	return cmd
}

// newSignCmd 签名交易
func newSignCmd(env *cliEnv) *cobra.Command {
	var (
		cred      credentials
		chainID   uint64
		verbosity int
		verbose   bool
	)
	cmd := &cobra.Command{
		Use:     "sign <txFile> <accountFile>",
		Aliases: []string{"st"},
		Short:   "签名交易",
		Long: `按交易参数文件生成 EIP-155 签名交易。

签名后立即从结果中恢复发送方和各字段，供核对。

详细程度 (--verbosity)：
  -1  只输出签名后的交易
   0  交易信息 + 签名后的交易
   1  再加签名信息（默认）
   2  再加解析后的参数和未签名字段`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			txFile, file := args[0], args[1]
			if verbose {
				verbosity = verbosityMax
			}
			if verbosity < verbosityQuiet || verbosity > verbosityMax {
				return types.Validationf("sign", "verbosity must be in [%d, %d], got %d", verbosityQuiet, verbosityMax, verbosity)
			}

			w, err := env.getWallet()
			if err != nil {
				return err
			}

			data, err := os.ReadFile(txFile)
			if err != nil {
				return err
			}
			params, err := tx.ParseParams(data)
			if err != nil {
				return fmt.Errorf("交易参数文件 %s: %w", txFile, err)
			}
			fields, err := params.Resolve(w.Address)
			if err != nil {
				return fmt.Errorf("交易参数文件 %s: %w", txFile, err)
			}

			record, err := keystore.ReadFile(file)
			if err != nil {
				return err
			}
			passcode, _, err := cred.passcode(cmd, env, w, "Enter password: ", "")
			if err != nil {
				return err
			}
			privateKey, ok, err := w.Keystore.Open(record, passcode)
			if err != nil {
				return err
			}
			if !ok {
				return &wrongPasswordError{file: file}
			}

			signed, err := w.Signer.Sign(fields, chainID, privateKey)
			if err != nil {
				return err
			}
			recovered, err := w.Signer.Recover(signed.SignedRLP)
			if err != nil {
				return err
			}
			desc, err := tx.Describe(recovered, params.DataEnc, w.Address)
			if err != nil {
				return err
			}
			signedHex := "0x" + hex.EncodeToString(signed.SignedRLP)

			if env.formatter.IsStructured() {
				return env.formatter.Print(struct {
					Transaction       *tx.Description `json:"transaction"`
					SignedTransaction string          `json:"signedTransaction"`
				}{desc, signedHex})
			}

			if verbosity < 0 {
				return env.formatter.Line(signedHex)
			}
			if verbosity >= 2 {
				if err := printParsed(env, fields, signed); err != nil {
					return err
				}
			}
			if err := printTransaction(env, desc); err != nil {
				return err
			}
			if verbosity >= 1 {
				if err := printSignature(env, desc); err != nil {
					return err
				}
			}
			if err := env.formatter.Section("Signed transaction"); err != nil {
				return err
			}
			return env.formatter.Line(signedHex)
		},
	}
	cred.register(cmd, defaultCredentialNames, "")
	cmd.Flags().Uint64VarP(&chainID, "chainid", "c", 1, "链 ID (默认 1，以太坊主网)")
	cmd.Flags().IntVarP(&verbosity, "verbosity", "v", verbosityDefault, "详细程度 [-1, 2]")
	cmd.Flags().BoolVarP(&verbose, "verbose", "V", false, "最高详细程度")
	return cmd
}

// newRecoverCmd 检查已签名交易
func newRecoverCmd(env *cliEnv) *cobra.Command {
	var (
		dataEnc string
		file    string
	)
	cmd := &cobra.Command{
		Use:     "recover [signedTx]",
		Aliases: []string{"rt"},
		Short:   "检查已签名交易并恢复发送方",
		Long: `解码 RLP 编码的已签名交易（十六进制，可带 0x），恢复发送方地址和链 ID。

只支持 EIP-155 交易 (v >= 35)。`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var input string
			switch {
			case len(args) == 1:
				input = args[0]
			case file != "":
				data, err := os.ReadFile(file)
				if err != nil {
					return err
				}
				input = string(data)
			default:
				return fmt.Errorf("需要已签名交易或 --file")
			}
			if !tx.IsEncoding(dataEnc) {
				return types.Validationf("recover", "invalid data encoding %q", dataEnc)
			}

			input = strings.TrimSpace(input)
			input = strings.TrimPrefix(strings.TrimPrefix(input, "0x"), "0X")
			raw, err := hex.DecodeString(input)
			if err != nil {
				return types.Validationf("recover", "signed transaction is not hex: %v", err)
			}

			w, err := env.getWallet()
			if err != nil {
				return err
			}
			recovered, err := w.Signer.Recover(raw)
			if err != nil {
				return err
			}
			desc, err := tx.Describe(recovered, dataEnc, w.Address)
			if err != nil {
				return err
			}

			if env.formatter.IsStructured() {
				return env.formatter.Print(desc)
			}
			if err := printTransaction(env, desc); err != nil {
				return err
			}
			return printSignature(env, desc)
		},
	}
	cmd.Flags().StringVarP(&dataEnc, "enc", "e", tx.EncHex, "data 字段的显示编码")
	cmd.Flags().StringVarP(&file, "file", "f", "", "从文件读取已签名交易")
	return cmd
}

func printParsed(env *cliEnv, fields *types.TxFields, signed *types.SignedTx) error {
	rows := []output.KeyValue{
		row("Nonce:", fields.Nonce),
		row("To:", fields.To),
		row("Value:", fields.Value+" wei"),
		row("Gas Price:", fields.GasPrice+" wei"),
		row("Gas Limit:", fields.GasLimit),
		row("Data:", fields.Data),
		row("Data Encoding:", fields.DataEnc),
	}
	if err := env.formatter.PrintKeyValues("Parsed transaction parameters", rows); err != nil {
		return err
	}

	names := []string{"nonce", "gasPrice", "gasLimit", "to", "value", "data", "chainId", "r", "s"}
	rows = rows[:0]
	for i, field := range signed.TxArr {
		rows = append(rows, row(names[i]+":", "0x"+hex.EncodeToString(field)))
	}
	return env.formatter.PrintKeyValues("Unsigned fields", rows)
}

func printTransaction(env *cliEnv, desc *tx.Description) error {
	to := desc.To
	if to == "" {
		to = "(contract creation)"
	}
	rows := []output.KeyValue{
		row("To:", to),
		row("From:", desc.From),
		row("Nonce:", desc.Nonce),
		row("Chain ID:", desc.ChainID),
		row("Value:", tx.Sci(desc.Value, 3)+" wei"),
		row("Gas Price:", tx.Sci(desc.GasPrice, 3)+" wei"),
		row("Gas Limit:", desc.GasLimit),
	}
	if desc.Data != "" {
		rows = append(rows, row("Data:", desc.Data))
	}
	return env.formatter.PrintKeyValues("Transaction information", rows)
}

func printSignature(env *cliEnv, desc *tx.Description) error {
	return env.formatter.PrintKeyValues("Signature information", []output.KeyValue{
		row("Message Hash:", desc.MessageHash),
		row("v:", desc.V),
		row("r:", desc.R),
		row("s:", desc.S),
	})
}
