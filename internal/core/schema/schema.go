// Package schema 基于 JSON Schema 的严格结构校验
//
// 缺失、多余和类型错误的字段由 JSON Schema 校验器报告；十六进制、长度、版本号这类
// 领域规则由调用方通过 Document 追加。所有问题合并到同一个 types.SchemaError，
// 不会在第一个问题处停止。
package schema

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/santhosh-tekuri/jsonschema/v6/kind"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/weisyn/ethwallet/pkg/types"
)

// 内嵌 schema 的资源前缀，编译时不会访问网络
const resourceBase = "https://ethwallet.local/schema/"

var printer = message.NewPrinter(language.English)

// Validator 已编译的 JSON Schema
type Validator struct {
	subject string
	schema  *jsonschema.Schema
}

// Compile 编译 schema 文档
//
// subject 出现在错误信息中，例如 "keystore"；name 只用于生成资源 URL。
func Compile(subject, name string, doc []byte) (*Validator, error) {
	parsed, err := jsonschema.UnmarshalJSON(bytes.NewReader(doc))
	if err != nil {
		return nil, fmt.Errorf("解析 schema %s 失败: %w", name, err)
	}
	url := resourceBase + name
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, parsed); err != nil {
		return nil, fmt.Errorf("加载 schema %s 失败: %w", name, err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("编译 schema %s 失败: %w", name, err)
	}
	return &Validator{subject: subject, schema: compiled}, nil
}

// MustCompile 用于包级变量，schema 有误时 panic
func MustCompile(subject, name string, doc []byte) *Validator {
	v, err := Compile(subject, name, doc)
	if err != nil {
		panic(err)
	}
	return v
}

// Check 解析并校验 data
//
// 返回的 Document 总是非 nil：调用方继续读取字段、追加领域问题，最后调用 Err。
func (v *Validator) Check(data []byte) *Document {
	d := &Document{issues: &types.SchemaError{Subject: v.subject}}
	root, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		d.Issue("$", "invalid JSON: "+err.Error())
		return d
	}
	d.root = root

	if err := v.schema.Validate(root); err != nil {
		var ve *jsonschema.ValidationError
		if !errors.As(err, &ve) {
			d.Issue("$", err.Error())
			return d
		}
		collect(d.issues, ve)
	}
	return d
}

// collect 只展开叶子错误，分组节点（allOf、$ref、then）本身不携带问题
func collect(issues *types.SchemaError, ve *jsonschema.ValidationError) {
	if len(ve.Causes) > 0 {
		for _, cause := range ve.Causes {
			collect(issues, cause)
		}
		return
	}

	at := ve.InstanceLocation
	switch k := ve.ErrorKind.(type) {
	case *kind.Required:
		for _, name := range k.Missing {
			issues.Missing(Join(child(at, name)...))
		}
	case *kind.AdditionalProperties:
		for _, name := range k.Properties {
			issues.Unexpected(Join(child(at, name)...))
		}
	case *kind.Type:
		issues.Mistyped(Join(at...), strings.Join(k.Want, " or "))
	default:
		issues.Add(Join(at...), ve.ErrorKind.LocalizedString(printer))
	}
}

func child(parent []string, name string) []string {
	path := make([]string, 0, len(parent)+1)
	path = append(path, parent...)
	return append(path, name)
}

// Join 字段路径，例如 crypto.kdfparams.salt；根为 "$"
func Join(path ...string) string {
	if len(path) == 0 {
		return "$"
	}
	return strings.Join(path, ".")
}

// Document 通过结构校验后的 JSON 文档
type Document struct {
	root   interface{}
	issues *types.SchemaError
}

// Issue 追加领域问题
func (d *Document) Issue(path, problem string) {
	d.issues.Add(path, problem)
}

// Err 没有问题时返回 nil；问题按路径、描述排序并去重
func (d *Document) Err() error {
	issues := d.issues.Issues
	sort.Slice(issues, func(i, j int) bool {
		if issues[i].Path != issues[j].Path {
			return issues[i].Path < issues[j].Path
		}
		return issues[i].Problem < issues[j].Problem
	})
	deduped := issues[:0]
	for i, issue := range issues {
		if i > 0 && issue == issues[i-1] {
			continue
		}
		deduped = append(deduped, issue)
	}
	d.issues.Issues = deduped
	return d.issues.ErrOrNil()
}

func (d *Document) lookup(path ...string) (interface{}, bool) {
	cur := d.root
	for _, key := range path {
		obj, ok := cur.(map[string]interface{})
		if !ok {
			return nil, false
		}
		if cur, ok = obj[key]; !ok {
			return nil, false
		}
	}
	return cur, true
}

// String 读取字符串字段
//
// 缺失或类型不符时返回 false，不追加问题：这两类已由 schema 报告。
func (d *Document) String(path ...string) (string, bool) {
	v, ok := d.lookup(path...)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Int 读取整数字段，只接受十进制整数字面量（3.0、1e3 记为类型错误）
func (d *Document) Int(path ...string) (int, bool) {
	v, ok := d.lookup(path...)
	if !ok {
		return 0, false
	}
	num, ok := v.(json.Number)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(num.String())
	if err != nil {
		d.issues.Mistyped(Join(path...), "integer")
		return 0, false
	}
	return n, true
}

// Hex 读取无 0x 前缀的十六进制字段，byteLen > 0 时要求精确长度
//
// 成功时返回原字符串。
func (d *Document) Hex(byteLen int, path ...string) (string, bool) {
	s, ok := d.String(path...)
	if !ok {
		return "", false
	}
	at := Join(path...)
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		d.Issue(at, "hex must not carry a 0x prefix")
		return "", false
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		d.issues.Mistyped(at, "hex string")
		return "", false
	}
	if byteLen > 0 && len(b) != byteLen {
		d.Issue(at, "expected "+strconv.Itoa(byteLen)+" bytes, got "+strconv.Itoa(len(b)))
		return "", false
	}
	return s, true
}
