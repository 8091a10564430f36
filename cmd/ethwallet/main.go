// Command ethwallet 以太坊账户命令行钱包
//
// 生成并加密保存私钥（V3 keystore），签名和检查 EIP-155 交易。
package main

import "os"

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
