package signature

import (
	"github.com/weisyn/ethwallet/internal/core/infrastructure/crypto/key"
	"github.com/weisyn/ethwallet/internal/core/infrastructure/crypto/secp256k1"
	cryptointf "github.com/weisyn/ethwallet/pkg/interfaces/infrastructure/crypto"
	"github.com/weisyn/ethwallet/pkg/types"
)

// 确保SignatureService实现了cryptointf.SignatureManager接口
var _ cryptointf.SignatureManager = (*SignatureService)(nil)

// SignatureService 提供 secp256k1 可恢复签名
//
// 🎯 **设计原则**：
// - RFC6979 确定性 nonce，同一 (hash, key) 总是得到同一签名
// - s 规范化为 low-S，恢复 ID 随之调整
// - 只暴露 0/1 两种恢复 ID，与以太坊交易签名一致
type SignatureService struct {
	keyManager     *key.KeyManager
	secp256k1Curve *secp256k1.Curve
}

// NewSignatureService 创建新的签名服务
func NewSignatureService(keyManager *key.KeyManager) *SignatureService {
	return &SignatureService{
		keyManager:     keyManager,
		secp256k1Curve: secp256k1.NewCurve(),
	}
}

// SignRecoverable 对 32 字节哈希签名，返回 (r, s, recoveryID)
func (ss *SignatureService) SignRecoverable(hash []byte, privateKey []byte) (*cryptointf.RecoverableSignature, error) {
	if len(hash) != cryptointf.HashLength {
		return nil, types.Cryptof("signature.SignRecoverable", "无效的哈希长度: %d", len(hash))
	}
	if err := ss.keyManager.ValidatePrivateKey(privateKey); err != nil {
		return nil, err
	}

	compact, err := ss.secp256k1Curve.SignCompact(hash, privateKey)
	if err != nil {
		return nil, err
	}

	recID := secp256k1.RecoveryID(compact)
	// R.x ≥ n 时恢复 ID 为 2/3，以太坊交易无法表达
	if recID > 1 {
		return nil, types.Cryptof("signature.SignRecoverable", "无效的恢复ID: %d", recID)
	}

	sig := &cryptointf.RecoverableSignature{
		R:          make([]byte, cryptointf.ScalarLength),
		S:          make([]byte, cryptointf.ScalarLength),
		RecoveryID: recID,
	}
	copy(sig.R, compact[1:33])
	copy(sig.S, compact[33:65])
	return sig, nil
}

// RecoverPublicKey 从签名恢复 65 字节未压缩公钥
func (ss *SignatureService) RecoverPublicKey(hash []byte, sig *cryptointf.RecoverableSignature) ([]byte, error) {
	const op = "signature.RecoverPublicKey"
	if sig == nil {
		return nil, types.Cryptof(op, "签名为空")
	}
	if len(hash) != cryptointf.HashLength {
		return nil, types.Cryptof(op, "无效的哈希长度: %d", len(hash))
	}
	if len(sig.R) != cryptointf.ScalarLength {
		return nil, types.Cryptof(op, "r 长度无效: 期望 %d 字节，实际 %d 字节", cryptointf.ScalarLength, len(sig.R))
	}
	if len(sig.S) != cryptointf.ScalarLength {
		return nil, types.Cryptof(op, "s 长度无效: 期望 %d 字节，实际 %d 字节", cryptointf.ScalarLength, len(sig.S))
	}
	if sig.RecoveryID > 1 {
		return nil, types.Cryptof(op, "无效的恢复ID: %d", sig.RecoveryID)
	}

	pub, err := ss.secp256k1Curve.RecoverCompact(hash, sig.R, sig.S, sig.RecoveryID)
	if err != nil {
		return nil, err
	}
	return pub.SerializeUncompressed(), nil
}
