package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Japanese translations for CLI messages
	l10n.Register("ja", l10n.LexiconMap{
		"Interrupted, shutting down...": "中断されました。終了しています...",
		"Folder":                        "フォルダ",
		"Frames":                        "フレーム数",
		"Duration":                      "再生時間",
		"Dimensions":                    "サイズ",
		"Files":                         "ファイル",
		"Failed frames":                 "読み込みに失敗したフレーム",
		"Failed to write output: %s":    "出力の書き込みに失敗しました: %s",
		"Output saved to %s":            "出力を %s に保存しました",
		"imageseq version %s":           "imageseq バージョン %s",
	})
}
