package keystore

import (
	_ "embed"
	"regexp"

	keystoreconfig "github.com/weisyn/ethwallet/internal/config/keystore"
	"github.com/weisyn/ethwallet/internal/core/schema"
	"github.com/weisyn/ethwallet/pkg/types"
)

// RecordVersion 唯一支持的 keystore 版本
const RecordVersion = 3

// 记录类型定义在 pkg/types，供 pkg/interfaces/wallet 使用
type (
	Record       = types.KeystoreRecord
	CryptoRecord = types.KeystoreCrypto
	CipherParams = types.CipherParams
	KDFParams    = types.KDFParams
)

// 字段结构由 keystore.schema.json 描述，按 kdf 选择 kdfparams 的形状
//
//go:embed keystore.schema.json
var recordSchemaJSON []byte

var (
	recordSchema = schema.MustCompile("keystore", "keystore-v3.json", recordSchemaJSON)

	idPattern = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)
)

// ParseRecord 严格解析 keystore JSON
//
// 缺失、多余或类型错误的字段全部列在返回的 ParseError 中。
// kdf / cipher 名称只检查是否为字符串：不支持的名称在 Open 时报告为 ConfigurationError。
func ParseRecord(data []byte) (*Record, error) {
	doc := recordSchema.Check(data)

	rec := &Record{}
	if v, ok := doc.Int("version"); ok {
		if v != RecordVersion {
			doc.Issue("version", "unsupported version")
		}
		rec.Version = v
	}
	if id, ok := doc.String("id"); ok {
		if !idPattern.MatchString(id) {
			doc.Issue("id", "expected 36-char grouped hex id")
		}
		rec.ID = id
	}
	rec.Address, _ = doc.Hex(20, "address")
	parseCrypto(doc, &rec.Crypto)

	if err := doc.Err(); err != nil {
		return nil, err
	}
	return rec, nil
}

func parseCrypto(doc *schema.Document, out *CryptoRecord) {
	out.Cipher, _ = doc.String("crypto", "cipher")
	out.KDF, _ = doc.String("crypto", "kdf")
	out.Ciphertext, _ = doc.Hex(0, "crypto", "ciphertext")
	out.MAC, _ = doc.Hex(32, "crypto", "mac")
	out.CipherParams.IV, _ = doc.Hex(0, "crypto", "cipherparams", "iv")

	kp := &out.KDFParams
	kp.DKLen, _ = doc.Int(kdfParam("dklen")...)
	kp.Salt, _ = doc.Hex(0, kdfParam("salt")...)
	switch out.KDF {
	case keystoreconfig.KDFScrypt:
		kp.N, _ = doc.Int(kdfParam("n")...)
		kp.P, _ = doc.Int(kdfParam("p")...)
		kp.R, _ = doc.Int(kdfParam("r")...)
	case keystoreconfig.KDFPBKDF2:
		kp.C, _ = doc.Int(kdfParam("c")...)
		kp.PRF, _ = doc.String(kdfParam("prf")...)
	}
}

func kdfParam(name string) []string {
	return []string{"crypto", "kdfparams", name}
}
