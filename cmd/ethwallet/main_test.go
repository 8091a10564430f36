package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testKey     = "0x4646464646464646464646464646464646464646464646464646464646464646"
	testAddress = "0x9d8A62f656a8d1615C1294fd71e9CFb3E4855A4F"

	// 模板参数、chainId 1、testKey 签名的结果
	templateSigned = "0xf8708085012a05f20082c35094bfe00b11baa36715cfbefb00c218bc7c5ca5107587038d7ea4c680008568656c6c6f25a08b97ee56e3b697152cf0882323f2288882f8aea9184db621daefc2aa14bc7892a027c16d5adf0e048bb5a36882c7080b8a211be606fcc084e2aff909f7563f7c3b"
)

func init() {
	pterm.DisableStyling()
}

type result struct {
	out, err string
	code     int
}

// harness 每个测试一个临时目录和低成本 kdf 配置
type harness struct {
	t      *testing.T
	dir    string
	config string
}

func newHarness(t *testing.T) *harness {
	dir := t.TempDir()
	config := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(config, []byte(`{"keystore":{"kdf":"pbkdf2","pbkdf2":{"c":16}}}`), 0o600))
	return &harness{t: t, dir: dir, config: config}
}

func (h *harness) path(name string) string {
	return filepath.Join(h.dir, name)
}

func (h *harness) write(name, content string) string {
	p := h.path(name)
	require.NoError(h.t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func (h *harness) run(stdin string, args ...string) result {
	var out, errOut bytes.Buffer
	args = append([]string{"--config", h.config}, args...)
	code := run(args, strings.NewReader(stdin), &out, &errOut)
	return result{out: out.String(), err: errOut.String(), code: code}
}

// importTestKey 用 testKey 创建账户
func (h *harness) importTestKey(name, password string) string {
	keyFile := h.write("plain.txt", testKey+"\n")
	account := h.path(name)
	res := h.run("", "create", account, "--getkey", keyFile, "--pass", password)
	require.Equal(h.t, 0, res.code, res.err)
	return account
}

func TestCreateAndGetAddress(t *testing.T) {
	h := newHarness(t)
	account := h.importTestKey("account.json", "pw")

	res := h.run("", "getaddress", account)
	require.Equal(t, 0, res.code, res.err)
	assert.Contains(t, res.out, testAddress)

	res = h.run("", "-o", "json", "getaddress", account)
	require.Equal(t, 0, res.code, res.err)
	var got map[string]string
	require.NoError(t, json.Unmarshal([]byte(res.out), &got))
	assert.Equal(t, testAddress, got["address"])
}

func TestCreate_PromptedPassword(t *testing.T) {
	h := newHarness(t)
	account := h.path("prompted.json")

	// 第一次确认不一致，重新输入
	res := h.run("pw\nother\npw\npw\n", "create", account)
	require.Equal(t, 0, res.code, res.err)
	assert.Contains(t, res.err, "Entries do not match")

	res = h.run("", "getkey", account, "--pass", "pw")
	require.Equal(t, 0, res.code, res.err)
}

func TestCreate_DefaultFileName(t *testing.T) {
	h := newHarness(t)
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(h.dir))
	defer func() { _ = os.Chdir(wd) }()

	res := h.run("", "-o", "json", "create", "--nopass")
	require.Equal(t, 0, res.code, res.err)

	var got map[string]string
	require.NoError(t, json.Unmarshal([]byte(res.out), &got))
	assert.True(t, strings.HasPrefix(got["file"], "UTC--"))
	assert.True(t, strings.HasSuffix(got["file"], strings.ToLower(got["address"][2:])))
	_, err = os.Stat(filepath.Join(h.dir, got["file"]))
	require.NoError(t, err)
}

func TestCreate_InvalidPlainKey(t *testing.T) {
	h := newHarness(t)
	keyFile := h.write("zero.txt", strings.Repeat("00", 32))

	res := h.run("", "create", h.path("a.json"), "--getkey", keyFile, "--pass", "pw")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.err, "private key is invalid")
}

func TestCreate_OverwriteDeclined(t *testing.T) {
	h := newHarness(t)
	existing := h.write("a.json", "keep")

	res := h.run("n\n", "create", existing, "--pass", "pw")
	require.Equal(t, 0, res.code, res.err)
	assert.Contains(t, res.err, "Existing file will be overwritten")

	data, err := os.ReadFile(existing)
	require.NoError(t, err)
	assert.Equal(t, "keep", string(data))
}

func TestGetKey(t *testing.T) {
	h := newHarness(t)
	account := h.importTestKey("account.json", "pw")

	t.Run("正确密码", func(t *testing.T) {
		res := h.run("", "getkey", account, "--pass", "pw")
		require.Equal(t, 0, res.code, res.err)
		assert.Contains(t, res.out, testKey)
	})

	t.Run("错误密码", func(t *testing.T) {
		res := h.run("", "getkey", account, "--pass", "wrong")
		assert.Equal(t, 1, res.code)
		assert.Contains(t, res.err, "Incorrect password and/or keyfile for account "+account)
		assert.NotContains(t, res.out, testKey)
	})

	t.Run("结构错误的 keystore", func(t *testing.T) {
		bad := h.write("bad.json", `{"version":3}`)
		res := h.run("", "getkey", bad, "--pass", "pw")
		assert.Equal(t, 1, res.code)
		assert.Contains(t, res.err, "missing")
	})
}

func TestKeyfilePasscode(t *testing.T) {
	h := newHarness(t)
	keyfile := h.write("secret.bin", "keyfile contents")
	plain := h.write("plain.txt", testKey)
	account := h.path("account.json")

	res := h.run("", "create", account, "--getkey", plain, "--pass", "pw", "--keyfile", keyfile, "--iter", "3")
	require.Equal(t, 0, res.code, res.err)

	res = h.run("", "getkey", account, "--pass", "pw", "--keyfile", keyfile, "--iter", "3")
	require.Equal(t, 0, res.code, res.err)
	assert.Contains(t, res.out, testKey)

	// 次数不同得到不同的 passcode
	res = h.run("", "getkey", account, "--pass", "pw", "--keyfile", keyfile)
	assert.Equal(t, 1, res.code)

	res = h.run("", "getkey", account, "--pass", "pw")
	assert.Equal(t, 1, res.code)
}

func TestUpdate(t *testing.T) {
	h := newHarness(t)
	account := h.importTestKey("account.json", "old")

	t.Run("写入新文件", func(t *testing.T) {
		moved := h.path("moved.json")
		res := h.run("", "update", account, "--passold", "old", "--passnew", "new", "--filenew", moved)
		require.Equal(t, 0, res.code, res.err)
		assert.Contains(t, res.out, "New account file:")

		res = h.run("", "getkey", moved, "--pass", "new")
		require.Equal(t, 0, res.code, res.err)
		assert.Contains(t, res.out, testKey)

		// 原文件保持旧密码
		res = h.run("", "getkey", account, "--pass", "old")
		require.Equal(t, 0, res.code, res.err)
	})

	t.Run("覆盖原文件并显示对比", func(t *testing.T) {
		res := h.run("y\n", "update", account, "--passold", "old", "--nopassnew", "--verbose")
		require.Equal(t, 0, res.code, res.err)
		assert.Contains(t, res.out, testKey)
		assert.Contains(t, res.out, testAddress)

		res = h.run("", "getkey", account, "--nopass")
		require.Equal(t, 0, res.code, res.err)
		res = h.run("", "getkey", account, "--pass", "old")
		assert.Equal(t, 1, res.code)
	})

	t.Run("当前密码错误时不写入", func(t *testing.T) {
		before, err := os.ReadFile(account)
		require.NoError(t, err)

		res := h.run("", "update", account, "--passold", "wrong", "--passnew", "x")
		assert.Equal(t, 1, res.code)
		assert.Contains(t, res.err, "Incorrect password and/or keyfile")

		after, err := os.ReadFile(account)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})
}

func TestTemplateAndSign(t *testing.T) {
	h := newHarness(t)
	account := h.importTestKey("account.json", "pw")
	template := h.path("tx_params.json")

	res := h.run("", "template", "--file", template)
	require.Equal(t, 0, res.code, res.err)

	t.Run("只输出签名交易", func(t *testing.T) {
		res := h.run("", "sign", template, account, "--pass", "pw", "--verbosity", "-1")
		require.Equal(t, 0, res.code, res.err)
		assert.Equal(t, templateSigned+"\n", res.out)
	})

	t.Run("默认输出", func(t *testing.T) {
		res := h.run("", "sign", template, account, "--pass", "pw")
		require.Equal(t, 0, res.code, res.err)
		for _, want := range []string{
			"Transaction information", "Signature information", "Signed transaction",
			testAddress, "0xBFe00b11BAA36715cfBEFb00c218bC7c5CA51075", "1.000e+15 wei", "5.000e+9 wei", "hello", "37",
			templateSigned,
		} {
			assert.Contains(t, res.out, want)
		}
	})

	t.Run("最高详细程度", func(t *testing.T) {
		res := h.run("", "sign", template, account, "--pass", "pw", "--verbose")
		require.Equal(t, 0, res.code, res.err)
		assert.Contains(t, res.out, "Parsed transaction parameters")
		assert.Contains(t, res.out, "Unsigned fields")
	})

	t.Run("JSON", func(t *testing.T) {
		res := h.run("", "-o", "json", "sign", template, account, "--pass", "pw", "--chainid", "3")
		require.Equal(t, 0, res.code, res.err)
		var got struct {
			Transaction struct {
				From    string `json:"from"`
				ChainID string `json:"chainId"`
			} `json:"transaction"`
			SignedTransaction string `json:"signedTransaction"`
		}
		require.NoError(t, json.Unmarshal([]byte(res.out), &got))
		assert.Equal(t, testAddress, got.Transaction.From)
		assert.Equal(t, "3", got.Transaction.ChainID)
	})

	t.Run("详细程度越界", func(t *testing.T) {
		res := h.run("", "sign", template, account, "--pass", "pw", "--verbosity", "3")
		assert.Equal(t, 1, res.code)
	})

	t.Run("参数文件结构错误", func(t *testing.T) {
		bad := h.write("bad_params.json", `{"nonce":0}`)
		res := h.run("", "sign", bad, account, "--pass", "pw")
		assert.Equal(t, 1, res.code)
		assert.Contains(t, res.err, "nonce")
	})

	t.Run("模板不覆盖", func(t *testing.T) {
		require.NoError(t, os.WriteFile(template, []byte("{}"), 0o600))
		res := h.run("n\n", "template", "--file", template)
		require.Equal(t, 0, res.code, res.err)
		data, err := os.ReadFile(template)
		require.NoError(t, err)
		assert.Equal(t, "{}", string(data))
	})
}

func TestRecover(t *testing.T) {
	h := newHarness(t)

	res := h.run("", "recover", templateSigned, "--enc", "utf-8")
	require.Equal(t, 0, res.code, res.err)
	assert.Contains(t, res.out, testAddress)
	assert.Contains(t, res.out, "hello")

	file := h.write("signed.txt", templateSigned[2:]+"\n")
	res = h.run("", "-o", "json", "recover", "--file", file)
	require.Equal(t, 0, res.code, res.err)
	var got map[string]string
	require.NoError(t, json.Unmarshal([]byte(res.out), &got))
	assert.Equal(t, "1", got["chainId"])
	assert.Equal(t, "0x68656c6c6f", got["data"])

	res = h.run("", "recover", "0xc0")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.err, "encoding")
}

func TestHashFile(t *testing.T) {
	h := newHarness(t)
	file := h.write("abc.txt", "abc")

	res := h.run("", "hashfile", file, "--hash", "sha256")
	require.Equal(t, 0, res.code, res.err)
	assert.Contains(t, res.out, "0xba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad")

	res = h.run("", "hashfile", file, "--hash", "sha256", "--iter", "0")
	require.Equal(t, 0, res.code, res.err)
	assert.Contains(t, res.out, "0x616263")

	// 负数按绝对值
	neg := h.run("", "hashfile", file, "--hash", "keccak256", "--iter", "-2")
	pos := h.run("", "hashfile", file, "--hash", "keccak256", "--iter", "2")
	require.Equal(t, 0, neg.code, neg.err)
	assert.Equal(t, pos.out, neg.out)

	t.Run("交互选择", func(t *testing.T) {
		list := h.run("", "-o", "json", "hashfile", "--list")
		require.Equal(t, 0, list.code, list.err)
		var names []string
		require.NoError(t, json.Unmarshal([]byte(list.out), &names))
		index := -1
		for i, n := range names {
			if n == "sha256" {
				index = i
			}
		}
		require.GreaterOrEqual(t, index, 0)

		res := h.run("99\n"+strconv.Itoa(index)+"\n", "hashfile", file, "--hash", "nope")
		require.Equal(t, 0, res.code, res.err)
		assert.Contains(t, res.err, "Invalid hash")
		assert.Contains(t, res.out, "ba7816bf")
	})
}

func TestList(t *testing.T) {
	h := newHarness(t)

	res := h.run("", "list", "units")
	require.Equal(t, 0, res.code, res.err)
	assert.Contains(t, res.out, "gwei")
	assert.Contains(t, res.out, "1e+9")

	res = h.run("", "list", "enc")
	require.Equal(t, 0, res.code, res.err)
	assert.Contains(t, res.out, "base58")

	res = h.run("", "list", "hashes")
	require.Equal(t, 0, res.code, res.err)
	assert.Contains(t, res.out, "keccak256")

	res = h.run("", "list", "colors")
	assert.Equal(t, 1, res.code)
}

func TestGlobalFlags(t *testing.T) {
	h := newHarness(t)

	res := h.run("", "-o", "yaml", "list", "units")
	assert.Equal(t, 1, res.code)

	var out, errOut bytes.Buffer
	code := run([]string{"--config", h.path("missing.json"), "list", "hashes"}, strings.NewReader(""), &out, &errOut)
	assert.Equal(t, 1, code)

	res = h.run("", "version")
	require.Equal(t, 0, res.code, res.err)
	assert.Contains(t, res.out, "ethwallet")
}
