package crypto

// AddressLength 地址字节长度
const AddressLength = 20

// AddressManager 地址派生与 EIP-55 校验和
type AddressManager interface {
	// AddressFromPublicKey 取 keccak256(未压缩公钥去头) 的后 20 字节
	// 公钥长度必须是 64、65（0x04 头）或 33（0x02/0x03 头），否则返回 EncodingError
	AddressFromPublicKey(publicKey []byte) ([]byte, error)

	// AddressFromPrivateKey 从私钥派生地址
	AddressFromPrivateKey(privateKey []byte) ([]byte, error)

	// IsValidAddress 校验十六进制地址字符串
	// 真正大小写混合且 skipChecksum 为 false 时必须与其校验和形式一致
	IsValidAddress(address string, skipChecksum bool) bool

	// IsValidAddressBytes 20 字节地址总是有效
	IsValidAddressBytes(address []byte) bool

	// ToChecksumAddress 返回带 0x 前缀的 EIP-55 校验和地址
	ToChecksumAddress(address string) (string, error)

	// ParseAddress 解析十六进制地址为 20 字节，大小写混合时校验 EIP-55 校验和
	ParseAddress(address string) ([]byte, error)
}
