package wallet

import (
	"github.com/weisyn/ethwallet/pkg/types"
)

// TransactionSigner 以太坊 legacy 交易的 EIP-155 签名与恢复
//
// 实现位置:
//   - internal/core/tx/signer.go
type TransactionSigner interface {
	// FormatTxParams 生成 [nonce, gasPrice, gasLimit, to, value, data, chainId, "", ""]
	FormatTxParams(fields *types.TxFields, chainID uint64) ([][]byte, error)

	// Sign 签名交易，v = recoveryID + 35 + 2*chainID
	Sign(fields *types.TxFields, chainID uint64, privateKey []byte) (*types.SignedTx, error)

	// Recover 解析签名交易并恢复发送方地址
	Recover(signed []byte) (*types.RecoveredTx, error)
}
