// Package i18n holds the popup's user-facing strings in English and
// Simplified Chinese.
package i18n

import (
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys.
const (
	KeyTitle              = "title"
	KeyShortcut           = "shortcut"
	KeyClose              = "aria_close"
	KeyInputLabel         = "aria_input_url_text"
	KeyInputPlaceholder   = "placeholder_input_url_text"
	KeyPreviewAlt         = "aria_preview"
	KeyTips               = "tips"
	KeyCopy               = "copy"
	KeyCopied             = "copied"
	KeyCopiedText         = "copied_text"
	KeyCopyFailed         = "copy_failed"
	KeyDownload           = "download"
	KeySaved              = "saved"
	KeyErrInitFailed      = "error_init_failed"
	KeyErrInputTooLong    = "error_input_too_long"
	KeyErrGenerateFailed  = "error_generate_failed"
	KeyErrNothingToExport = "error_nothing_to_export"
)

var supported = []language.Tag{language.English, language.SimplifiedChinese}

var matcher = language.NewMatcher(supported)

var messages = map[language.Tag]map[string]string{
	language.English: {
		KeyTitle:              "Scan QR Code",
		KeyShortcut:           "Alt+Shift+Q",
		KeyClose:              "Close",
		KeyInputLabel:         "URL or text to encode",
		KeyInputPlaceholder:   "Enter a URL or text",
		KeyPreviewAlt:         "QR code preview",
		KeyTips:               "Scan the QR code with your phone camera to open the link.",
		KeyCopy:               "Copy",
		KeyCopied:             "Copied",
		KeyCopiedText:         "Image copy failed, copied the text instead",
		KeyCopyFailed:         "Could not copy to the clipboard",
		KeyDownload:           "Download",
		KeySaved:              "Saved %s",
		KeyErrInitFailed:      "QR code generator failed to start",
		KeyErrInputTooLong:    "Input is too long. The limit is %s characters.",
		KeyErrGenerateFailed:  "Could not generate a QR code",
		KeyErrNothingToExport: "Nothing to export yet",
	},
	language.SimplifiedChinese: {
		KeyTitle:              "扫描二维码",
		KeyShortcut:           "Alt+Shift+Q",
		KeyClose:              "关闭",
		KeyInputLabel:         "要编码的网址或文本",
		KeyInputPlaceholder:   "输入网址或文本",
		KeyPreviewAlt:         "二维码预览",
		KeyTips:               "用手机相机扫描二维码即可打开链接。",
		KeyCopy:               "复制",
		KeyCopied:             "已复制",
		KeyCopiedText:         "无法复制图片，已改为复制文本",
		KeyCopyFailed:         "无法复制到剪贴板",
		KeyDownload:           "下载",
		KeySaved:              "已保存 %s",
		KeyErrInitFailed:      "二维码生成器启动失败",
		KeyErrInputTooLong:    "输入内容过长，最多 %s 个字符。",
		KeyErrGenerateFailed:  "无法生成二维码",
		KeyErrNothingToExport: "尚无可导出的二维码",
	},
}

var cat = func() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for tag, msgs := range messages {
		for key, msg := range msgs {
			// Keys are fixed above; SetString only fails on malformed input.
			if err := b.SetString(tag, key, msg); err != nil {
				panic(err)
			}
		}
	}
	return b
}()

// Localizer formats messages for one language.
type Localizer struct {
	tag     language.Tag
	printer *message.Printer
}

// New returns a Localizer for the best match of locale. An empty or unknown
// locale yields English.
func New(locale string) *Localizer {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return forTag(tag)
}

// FromAcceptLanguage picks the best supported language for an HTTP
// Accept-Language header, falling back to def.
func FromAcceptLanguage(header string, def *Localizer) *Localizer {
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return def
	}
	return forTag(tags...)
}

func forTag(tags ...language.Tag) *Localizer {
	_, idx, _ := matcher.Match(tags...)
	tag := supported[idx]
	return &Localizer{tag: tag, printer: message.NewPrinter(tag, message.Catalog(cat))}
}

// Tag returns the language messages are rendered in.
func (l *Localizer) Tag() language.Tag { return l.tag }

// Lang is the BCP 47 code for the html lang attribute.
func (l *Localizer) Lang() string { return l.tag.String() }

// T formats the message for key.
func (l *Localizer) T(key string, args ...any) string {
	return l.printer.Sprintf(key, args...)
}

// InputTooLong formats the input length error for limit.
func (l *Localizer) InputTooLong(limit int) string {
	// Passed as a string so the number is not grouped ("2,000").
	return l.T(KeyErrInputTooLong, strconv.Itoa(limit))
}
