package dto

// 题目记录，correct_index 只在服务器内部使用
// 发给客户端前必须经过 Sanitize
type Question struct {
	ID           string   `json:"id"`
	Category     string   `json:"category"`
	Text         string   `json:"text"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
	Difficulty   string   `json:"difficulty"`
}

// 去掉正确答案索引后的公开版本
type PublicQuestion struct {
	ID         string   `json:"id"`
	Category   string   `json:"category"`
	Text       string   `json:"text"`
	Options    []string `json:"options"`
	Difficulty string   `json:"difficulty"`
}

func (q Question) Sanitize() PublicQuestion {
	return PublicQuestion{
		ID:         q.ID,
		Category:   q.Category,
		Text:       q.Text,
		Options:    q.Options,
		Difficulty: q.Difficulty,
	}
}
