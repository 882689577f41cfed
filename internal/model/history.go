// File: internal/model/history.go
package model

import (
	"encoding/json"
	"time"
)

// 歷史紀錄接受的評估類型
const (
	AssessmentSleep    = "sleep"
	AssessmentStress   = "stress"
	AssessmentCovid    = "covid"
	AssessmentDiabetes = "diabetes"
	AssessmentLung     = "lung"
)

var assessmentTypes = map[string]struct{}{
	AssessmentSleep:    {},
	AssessmentStress:   {},
	AssessmentCovid:    {},
	AssessmentDiabetes: {},
	AssessmentLung:     {},
}

// IsAssessmentType 判斷 t 是否為已知的評估類型
func IsAssessmentType(t string) bool {
	_, ok := assessmentTypes[t]
	return ok
}

// HistoryEntry 一筆完成的評估。Inputs 與 Result 以壓縮後的 JSON 文字儲存，
// 讀取時原樣回傳
type HistoryEntry struct {
	ID        int64           `db:"id" json:"id"`
	UserID    int64           `db:"user_id" json:"-"`
	Type      string          `db:"type" json:"type"`
	Timestamp time.Time       `db:"timestamp" json:"timestamp"`
	Inputs    json.RawMessage `db:"inputs" json:"inputs"`
	Result    json.RawMessage `db:"result" json:"result"`
}
