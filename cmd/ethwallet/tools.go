package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/weisyn/ethwallet/internal/core/tx"
	"github.com/weisyn/ethwallet/internal/core/units"
	"github.com/weisyn/ethwallet/pkg/types"
)

// newHashFileCmd 对文件重复哈希
func newHashFileCmd(env *cliEnv) *cobra.Command {
	var (
		algorithm string
		iter      int
		list      bool
	)
	cmd := &cobra.Command{
		Use:     "hashfile <file>",
		Aliases: []string{"hf"},
		Short:   "计算文件哈希",
		Long: `对文件内容重复应用哈希函数，可用于检查 keyfile 派生出的值。

--iter 0 时原样输出文件内容，负数取绝对值。
未指定或指定了不支持的 --hash 时从列表中选择。`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := env.getWallet()
			if err != nil {
				return err
			}
			algorithms := w.Hash.Algorithms()
			if list {
				return printHashes(env, algorithms, true)
			}
			if len(args) != 1 {
				return fmt.Errorf("需要文件参数")
			}
			file := args[0]
			data, err := os.ReadFile(file)
			if err != nil {
				return err
			}

			if algorithm != "" && !w.Hash.Supports(algorithm) {
				env.formatter.PrintWarning("Invalid hash: " + algorithm)
				algorithm = ""
			}
			if algorithm == "" {
				if algorithm, err = selectHash(env, algorithms); err != nil {
					return err
				}
			}

			if iter < 0 {
				iter = -iter
			}
			digest, err := w.Hash.HashRepeated(data, algorithm, iter)
			if err != nil {
				return err
			}

			digestHex := "0x" + hex.EncodeToString(digest)
			if env.formatter.IsStructured() {
				return env.formatter.Print(map[string]string{
					"file":       file,
					"hash":       algorithm,
					"iterations": strconv.Itoa(iter),
					"digest":     digestHex,
				})
			}
			title := algorithm
			if iter != 1 {
				title += "(" + strconv.Itoa(iter) + ")"
			}
			if err := env.formatter.Section(title + " hash of file " + file); err != nil {
				return err
			}
			return env.formatter.Line(digestHex)
		},
	}
	cmd.Flags().StringVar(&algorithm, "hash", "", "哈希算法，见 list hashes")
	cmd.Flags().IntVarP(&iter, "iter", "i", 1, "哈希次数")
	cmd.Flags().BoolVar(&list, "list", false, "列出可用的哈希算法")
	return cmd
}

// selectHash 显示编号列表并读取选择
func selectHash(env *cliEnv, algorithms []string) (string, error) {
	if err := printHashes(env, algorithms, true); err != nil {
		return "", err
	}
	for {
		answer, err := env.prompt.line("Index number of the desired algorithm: ")
		if err != nil {
			return "", err
		}
		i, err := strconv.Atoi(strings.TrimSpace(answer))
		if err == nil && i >= 0 && i < len(algorithms) {
			return algorithms[i], nil
		}
	}
}

func printHashes(env *cliEnv, algorithms []string, indices bool) error {
	if env.formatter.IsStructured() {
		return env.formatter.Print(algorithms)
	}
	header := []string{"Hash"}
	if indices {
		header = []string{"#", "Hash"}
	}
	rows := make([][]string, 0, len(algorithms))
	for i, name := range algorithms {
		if indices {
			rows = append(rows, []string{strconv.Itoa(i), name})
		} else {
			rows = append(rows, []string{name})
		}
	}
	return env.formatter.PrintTable(header, rows)
}

// 可列出的内容
const (
	listUnits  = "units"
	listEnc    = "enc"
	listHashes = "hashes"
)

// newListCmd 列出单位、编码或哈希算法
func newListCmd(env *cliEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "list <units|enc|hashes>",
		Short: "列出可用的以太币单位、data 编码或哈希算法",
		Long: `可选内容：
  units   以太币单位及对应的 wei
  enc     交易 data 字段的编码
  hashes  keyfile 与 hashfile 可用的哈希算法`,
		ValidArgs: []string{listUnits, listEnc, listHashes},
		Args:      cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case listUnits:
				return printUnits(env)
			case listEnc:
				return printEncodings(env)
			case listHashes:
				w, err := env.getWallet()
				if err != nil {
					return err
				}
				return printHashes(env, w.Hash.Algorithms(), false)
			default:
				return types.Validationf("list", "invalid selection %q (want units, enc or hashes)", args[0])
			}
		},
	}
}

func printUnits(env *cliEnv) error {
	all := units.All()
	if env.formatter.IsStructured() {
		m := make(map[string]string, len(all))
		for _, u := range all {
			m[u.Name] = u.Wei()
		}
		return env.formatter.Print(m)
	}
	rows := make([][]string, 0, len(all))
	for _, u := range all {
		rows = append(rows, []string{u.Name, u.Scientific()})
	}
	return env.formatter.PrintTable([]string{"Unit", "Wei"}, rows)
}

func printEncodings(env *cliEnv) error {
	encodings := tx.Encodings()
	if env.formatter.IsStructured() {
		return env.formatter.Print(encodings)
	}
	rows := make([][]string, 0, len(encodings))
	for _, enc := range encodings {
		rows = append(rows, []string{enc})
	}
	return env.formatter.PrintTable([]string{"Encoding"}, rows)
}
