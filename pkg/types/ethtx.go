package types

// TxFields 待签名交易字段
//
// 数值字段为十进制字符串，金额已换算为 wei。
type TxFields struct {
	Nonce    string
	GasPrice string // wei
	GasLimit string
	To       string // 十六进制地址，0x 可选
	Value    string // wei
	Data     string
	DataEnc  string // 见 tx.Encodings()
}

// SignedTx 签名结果
type SignedTx struct {
	TxArr       [][]byte // 签名前的 9 字段数组 [nonce, gasPrice, gasLimit, to, value, data, chainId, "", ""]
	MessageHash []byte   // keccak256(RLP(TxArr))
	V           uint64
	R           []byte // 32 字节
	S           []byte // 32 字节
	SignedRLP   []byte // RLP([nonce, gasPrice, gasLimit, to, value, data, v, r, s])
}

// RecoveredTx 从签名交易中恢复的字段
//
// 数值字段保持最小大端字节形式。
type RecoveredTx struct {
	Nonce       []byte
	GasPrice    []byte
	GasLimit    []byte
	To          []byte // 20 字节，合约创建时为空
	Value       []byte
	Data        []byte
	V           uint64
	R           []byte
	S           []byte
	ChainID     uint64
	MessageHash []byte
	From        []byte // 20 字节
}
