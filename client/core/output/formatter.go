// Package output provides output formatting functionality for client commands.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/pterm/pterm"
)

// Format 输出格式
type Format string

const (
	// FormatText 纯文本与表格（默认）
	FormatText Format = "text"
	// FormatJSON 单行JSON
	FormatJSON Format = "json"
	// FormatPretty 美化JSON格式
	FormatPretty Format = "pretty"
)

// ParseFormat 解析 --output 参数
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatText, FormatJSON, FormatPretty:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text, json or pretty)", s)
	}
}

// Formatter 输出格式化器
//
// 命令结果写到 writer（stdout），提示信息写到 logWriter（stderr），
// 这样 `ethwallet sign ... -o json | jq` 不会被提示污染。
type Formatter struct {
	format    Format
	writer    io.Writer // 数据输出
	logWriter io.Writer // 提示输出（Info/Success/Error等）
	silent    bool
}

// NewFormatter 创建格式化器
func NewFormatter(format Format, writer io.Writer) *Formatter {
	if writer == nil {
		writer = os.Stdout
	}

	return &Formatter{
		format:    format,
		writer:    writer,
		logWriter: os.Stderr,
	}
}

// Format 当前输出格式
func (f *Formatter) Format() Format {
	return f.format
}

// IsStructured 是否输出JSON
func (f *Formatter) IsStructured() bool {
	return f.format == FormatJSON || f.format == FormatPretty
}

// SetLogWriter 设置提示输出目标（默认 stderr）
func (f *Formatter) SetLogWriter(writer io.Writer) {
	if writer == nil {
		writer = os.Stderr
	}
	f.logWriter = writer
}

// SetSilent 设置静默模式，只影响提示信息
func (f *Formatter) SetSilent(silent bool) {
	f.silent = silent
}

// Print 按当前格式打印结构化数据
//
// 文本格式下 map 以两列表格打印，其余值按 %v 打印。
func (f *Formatter) Print(data interface{}) error {
	switch f.format {
	case FormatJSON:
		return f.printJSON(data, false)
	case FormatPretty:
		return f.printJSON(data, true)
	default:
		if m, ok := data.(map[string]string); ok {
			return f.PrintKeyValues("", mapRows(m))
		}
		return f.Line(fmt.Sprintf("%v", data))
	}
}

// printJSON 打印JSON格式
func (f *Formatter) printJSON(data interface{}, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	return f.Line(string(output))
}

// Line 原样输出一行
func (f *Formatter) Line(s string) error {
	if _, err := fmt.Fprintln(f.writer, s); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// Section 打印分节标题
func (f *Formatter) Section(title string) error {
	if _, err := fmt.Fprint(f.writer, pterm.DefaultSection.Sprint(title)); err != nil {
		return fmt.Errorf("write section: %w", err)
	}
	return nil
}

// KeyValue 一行键值
type KeyValue struct {
	Key   string
	Value string
}

// PrintKeyValues 打印两列表格，title 非空时先打印分节标题
func (f *Formatter) PrintKeyValues(title string, rows []KeyValue) error {
	if title != "" {
		if err := f.Section(title); err != nil {
			return err
		}
	}
	data := make(pterm.TableData, 0, len(rows))
	for _, row := range rows {
		data = append(data, []string{row.Key, row.Value})
	}
	return f.renderTable(data, false)
}

// PrintTable 打印带表头的表格
func (f *Formatter) PrintTable(header []string, rows [][]string) error {
	data := make(pterm.TableData, 0, len(rows)+1)
	data = append(data, header)
	data = append(data, rows...)
	return f.renderTable(data, true)
}

func (f *Formatter) renderTable(data pterm.TableData, hasHeader bool) error {
	if len(data) == 0 {
		return nil
	}
	table := pterm.DefaultTable.WithData(data)
	if hasHeader {
		table = table.WithHasHeader().WithHeaderRowSeparator("-")
	}
	rendered, err := table.Srender()
	if err != nil {
		return fmt.Errorf("render table: %w", err)
	}
	return f.Line(rendered)
}

// PrintSuccess 打印成功消息
func (f *Formatter) PrintSuccess(message string) {
	if f.silent {
		return
	}
	_, _ = fmt.Fprint(f.logWriter, pterm.Success.Sprintln(message))
}

// PrintError 打印错误消息，静默模式下也输出
func (f *Formatter) PrintError(err error) {
	_, _ = fmt.Fprint(f.logWriter, pterm.Error.Sprintln(err.Error()))
}

// PrintWarning 打印警告消息
func (f *Formatter) PrintWarning(message string) {
	if f.silent {
		return
	}
	_, _ = fmt.Fprint(f.logWriter, pterm.Warning.Sprintln(message))
}

// PrintInfo 打印信息消息
func (f *Formatter) PrintInfo(message string) {
	if f.silent {
		return
	}
	_, _ = fmt.Fprint(f.logWriter, pterm.Info.Sprintln(message))
}

// mapRows 按键排序，保证输出稳定
func mapRows(m map[string]string) []KeyValue {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([]KeyValue, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, KeyValue{Key: k, Value: m[k]})
	}
	return rows
}
