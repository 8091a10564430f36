package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/weisyn/ethwallet/client/core/output"
	"github.com/weisyn/ethwallet/internal/app"
	"github.com/weisyn/ethwallet/internal/app/version"
)

// GlobalFlags 全局标志
type GlobalFlags struct {
	ConfigFile   string // 配置文件
	LogLevel     string // 日志级别，给出时日志输出到 stderr
	OutputFormat string // 输出格式
	Silent       bool   // 静默模式
}

// cliEnv 一次命令执行的上下文
type cliEnv struct {
	flags     GlobalFlags
	out       io.Writer
	errOut    io.Writer
	prompt    *prompter
	formatter *output.Formatter
	wallet    *app.Wallet
}

// getWallet 首次使用时装配钱包服务
func (e *cliEnv) getWallet() (*app.Wallet, error) {
	if e.wallet != nil {
		return e.wallet, nil
	}
	opts := []app.Option{app.WithLogLevel(e.flags.LogLevel)}
	if e.flags.ConfigFile != "" {
		opts = append(opts, app.WithConfigFile(e.flags.ConfigFile))
	}
	w, err := app.BootstrapWallet(opts...)
	if err != nil {
		return nil, err
	}
	e.wallet = w
	return w, nil
}

func (e *cliEnv) close() {
	if e.wallet != nil {
		e.wallet.Close()
	}
}

// wrongPasswordError MAC 不匹配，口令或 keyfile 错误
type wrongPasswordError struct {
	file string
}

func (e *wrongPasswordError) Error() string {
	return fmt.Sprintf("Incorrect password and/or keyfile for account %s.", e.file)
}

// newRootCmd 创建根命令
func newRootCmd(env *cliEnv) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ethwallet",
		Short: "以太坊账户命令行钱包",
		Long: `ethwallet - 离线以太坊账户工具

- 创建加密的 V3 keystore 账户，修改口令
- 根据交易参数文件生成 EIP-155 签名交易
- 检查已签名交易，恢复发送方地址

口令由密码与可选的 keyfile 组合而成，keyfile 经过多次哈希后与密码逐字节异或。`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			format, err := output.ParseFormat(env.flags.OutputFormat)
			if err != nil {
				return err
			}
			env.formatter = output.NewFormatter(format, env.out)
			env.formatter.SetLogWriter(env.errOut)
			env.formatter.SetSilent(env.flags.Silent)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&env.flags.ConfigFile, "config", "", "配置文件路径 (JSON)")
	rootCmd.PersistentFlags().StringVar(&env.flags.LogLevel, "log-level", "", "日志级别: debug|info|warn|error (给出时输出到 stderr)")
	rootCmd.PersistentFlags().StringVarP(&env.flags.OutputFormat, "output", "o", "text", "输出格式: text|json|pretty")
	rootCmd.PersistentFlags().BoolVar(&env.flags.Silent, "silent", false, "静默模式 (仅输出结果)")

	rootCmd.AddCommand(
		newCreateCmd(env),
		newUpdateCmd(env),
		newGetAddressCmd(env),
		newGetKeyCmd(env),
		newTemplateCmd(env),
		newSignCmd(env),
		newRecoverCmd(env),
		newHashFileCmd(env),
		newListCmd(env),
		newVersionCmd(env),
	)
	return rootCmd
}

func newVersionCmd(env *cliEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "显示版本信息",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if env.formatter.IsStructured() {
				return env.formatter.Print(version.GetBuildInfo())
			}
			return env.formatter.Line(version.GetFullVersion())
		},
	}
}

// run 执行命令并返回进程退出码
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	env := &cliEnv{
		out:    stdout,
		errOut: stderr,
		prompt: newPrompter(stdin, stderr),
	}
	defer env.close()

	rootCmd := newRootCmd(env)
	rootCmd.SetArgs(args)
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.Execute(); err != nil {
		var wrong *wrongPasswordError
		if errors.As(err, &wrong) || env.formatter == nil {
			fmt.Fprintln(stderr, err.Error())
		} else {
			env.formatter.PrintError(err)
		}
		return 1
	}
	return 0
}
