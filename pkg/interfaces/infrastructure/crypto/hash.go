package crypto

// HashManager 哈希计算
//
// Keccak256 用于地址、MAC 和交易消息哈希；
// 具名算法用于 keyfile 的重复哈希（hashRepeated）。
type HashManager interface {
	// Keccak256 计算拼接后数据的 Keccak-256（以太坊使用的 legacy keccak，非 NIST SHA3）
	Keccak256(data ...[]byte) []byte

	// Sum 使用具名算法计算一次哈希，未知算法返回 ConfigurationError
	Sum(algorithm string, data []byte) ([]byte, error)

	// HashRepeated 对输入重复应用具名哈希
	// iterations == 0 时原样返回输入，负数取绝对值
	HashRepeated(data []byte, algorithm string, iterations int) ([]byte, error)

	// Supports 判断算法名称是否可用
	Supports(algorithm string) bool

	// Algorithms 返回全部可用算法名称（有序）
	Algorithms() []string
}
