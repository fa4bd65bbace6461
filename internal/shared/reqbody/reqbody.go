// Package reqbody はリクエストボディの許可キー検査付きJSONデコードを提供します。
package reqbody

import (
	"encoding/json"
	"io"
	"slices"

	"petstore_backend/internal/shared/apperr"
)

// DecodeStrict はリクエストボディを読み取り、allowedに含まれないキーが
// 存在する場合はValidationエラーを返します。検査を通過したボディはdstに
// アンマーシャルされます。永続化より前に必ず呼び出してください。
// 空のボディはキーなしとして扱い、dstは変更されません。
func DecodeStrict(r io.Reader, allowed []string, dst any) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return apperr.New(apperr.Validation, "failed to read request body")
	}
	if len(data) == 0 {
		return nil
	}

	// キー検査のため一旦マップに展開する
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return apperr.New(apperr.Validation, "request body must be a JSON object")
	}
	for key := range raw {
		if !slices.Contains(allowed, key) {
			return apperr.Newf(apperr.Validation, "invalid request body key: %q", key)
		}
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return apperr.New(apperr.Validation, "invalid request body")
	}
	return nil
}
