// Package types 定义钱包核心共享的错误分类
package types

import (
	"fmt"
	"strings"
)

// ErrorKind 错误类别
//
// 调用方按类别匹配（errors.Is），而不是解析错误文本。
// 注意：口令错误（MAC 不匹配）不属于任何类别，它以普通返回值表达。
type ErrorKind int

const (
	// KindValidation 调用方可控的输入不合法：私钥取值/长度、地址格式/校验和等
	KindValidation ErrorKind = iota + 1
	// KindConfiguration 不支持的 kdf / cipher / 哈希名称（请求的或记录中携带的），不可重试
	KindConfiguration
	// KindEncoding RLP 结构错误：字段数量、非规范长度/整数编码、截断
	KindEncoding
	// KindCrypto 签名分量异常：r/s 长度、恢复 ID 越界、公钥恢复失败
	KindCrypto
	// KindParse keystore 记录或交易参数文件的结构校验失败
	KindParse
)

// String 返回类别名称
func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConfiguration:
		return "configuration"
	case KindEncoding:
		return "encoding"
	case KindCrypto:
		return "crypto"
	case KindParse:
		return "parse"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// 各类别的哨兵错误，用于 errors.Is 匹配
var (
	ErrValidation    = &Error{Kind: KindValidation}
	ErrConfiguration = &Error{Kind: KindConfiguration}
	ErrEncoding      = &Error{Kind: KindEncoding}
	ErrCrypto        = &Error{Kind: KindCrypto}
	ErrParse         = &Error{Kind: KindParse}
)

// Error 带类别的错误
type Error struct {
	Kind ErrorKind // 错误类别
	Op   string    // 出错的操作，例如 "rlp.Decode"
	Msg  string    // 描述
	Err  error     // 底层错误（可选）
}

// Error 实现 error 接口
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	b.WriteString(" error")
	if e.Op != "" {
		b.WriteString(" in ")
		b.WriteString(e.Op)
	}
	if e.Msg != "" {
		b.WriteString(": ")
		b.WriteString(e.Msg)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap 返回底层错误
func (e *Error) Unwrap() error {
	return e.Err
}

// Is 同类别即匹配，使 errors.Is(err, ErrEncoding) 可用
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func newf(kind ErrorKind, op, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Op: op, Msg: fmt.Sprintf(format, args...)}
}

// Validationf 构造 ValidationError
func Validationf(op, format string, args ...interface{}) error {
	return newf(KindValidation, op, format, args...)
}

// Configurationf 构造 ConfigurationError
func Configurationf(op, format string, args ...interface{}) error {
	return newf(KindConfiguration, op, format, args...)
}

// Encodingf 构造 EncodingError
func Encodingf(op, format string, args ...interface{}) error {
	return newf(KindEncoding, op, format, args...)
}

// Cryptof 构造 CryptoError
func Cryptof(op, format string, args ...interface{}) error {
	return newf(KindCrypto, op, format, args...)
}

// Parsef 构造 ParseError
func Parsef(op, format string, args ...interface{}) error {
	return newf(KindParse, op, format, args...)
}

// WrapKind 用指定类别包装底层错误
func WrapKind(kind ErrorKind, op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Err: err}
}

// FieldIssue 结构校验发现的单个问题
type FieldIssue struct {
	Path    string // 字段路径，例如 "crypto.kdfparams.salt"
	Problem string // missing / unexpected / 类型描述
}

// SchemaError 结构化解析错误，列出缺失、多余和类型错误的字段
//
// SchemaError 属于 KindParse，errors.Is(err, ErrParse) 成立。
type SchemaError struct {
	Subject string       // 被解析的对象，例如 "keystore"
	Issues  []FieldIssue // 全部问题，schema 包返回时按路径排序
}

// Error 实现 error 接口
func (e *SchemaError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, issue.Path+": "+issue.Problem)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Subject, strings.Join(parts, "; "))
}

// Is 使 SchemaError 归入 KindParse
func (e *SchemaError) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == KindParse
}

// Add 追加一个问题
func (e *SchemaError) Add(path, problem string) {
	e.Issues = append(e.Issues, FieldIssue{Path: path, Problem: problem})
}

// Missing 追加缺失字段
func (e *SchemaError) Missing(path string) {
	e.Add(path, "missing")
}

// Unexpected 追加多余字段
func (e *SchemaError) Unexpected(path string) {
	e.Add(path, "unexpected field")
}

// Mistyped 追加类型错误字段
func (e *SchemaError) Mistyped(path, want string) {
	e.Add(path, "expected "+want)
}

// ErrOrNil 没有问题时返回 nil
func (e *SchemaError) ErrOrNil() error {
	if e == nil || len(e.Issues) == 0 {
		return nil
	}
	return e
}
