package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Sequence loading
		"Loading sequence from %s":  "%s からシーケンスを読み込み中",
		"Loaded %d frames":          "%d フレームを読み込みました",
		"Load failed: %s":           "読み込みに失敗しました: %s",
		"Background load started":   "バックグラウンド読み込みを開始しました",
		"Background load cancelled": "バックグラウンド読み込みをキャンセルしました",
		"Background load finished":  "バックグラウンド読み込みが完了しました",

		// Per-frame decoding
		"Frame failed to decode: %s": "フレームのデコードに失敗しました: %s",

		// Usage errors
		"Frame index out of bounds: %d":       "フレーム番号が範囲外です: %d",
		"Configuration ignored: %s":           "設定は無視されました: %s",
		"Sequence is not loaded":              "シーケンスが読み込まれていません",
		"Preload called on an empty sequence": "空のシーケンスに対してプリロードが呼ばれました",
	})
}
