package game

import (
	"errors"
	"strings"
)

// 棋盘是 10x10 的格子，按绝对位置 0-99 编号
// 位置 44 是中心格，集齐目标词的所有字母后到达即获胜
const (
	BOARD_SIZE      = 100
	CENTER_POSITION = 44

	// 必须集齐的目标词，字符集固定（包含 @）
	TARGET_WORD = "@DIGITAL"
)

// 格子类型
const (
	HOUSE_CENTER   = "CENTER"
	HOUSE_TELEPORT = "TELEPORT"
	HOUSE_MYSTERY  = "MYSTERY"
	HOUSE_THEME    = "THEME"
)

// 传送格按环形顺序排列，落在其中一格会被传送到下一格
var teleportPositions = []int{10, 30, 50, 70, 90}

var mysteryPositions = []int{15, 35, 55, 75, 95}

// 主题格分类按象限分布：floor(position / 25) mod 4
var themeCategories = []string{"PSI", "MAT", "GAE", "FIS"}

// 每个分类能贡献的字母，按固定顺序发放
var categoryLetters = map[string][]string{
	"PSI": {"D", "I", "G"},
	"MAT": {"I", "T", "A"},
	"GAE": {"@", "L", "A"},
	"FIS": {"I", "T", "L"},
}

var (
	ErrMoveTooFar   = errors.New("移动距离超过骰子点数")
	ErrCenterLocked = errors.New("没有集齐所有字母，不能进入中心格")
	ErrOffBoard     = errors.New("目标位置不在棋盘上")
)

type House struct {
	Type     string `json:"type"`
	Category string `json:"category,omitempty"`
}

// HouseAt 按绝对位置分类格子，纯函数
func HouseAt(position int) House {
	if position == CENTER_POSITION {
		return House{Type: HOUSE_CENTER}
	}

	for _, p := range teleportPositions {
		if p == position {
			return House{Type: HOUSE_TELEPORT}
		}
	}

	for _, p := range mysteryPositions {
		if p == position {
			return House{Type: HOUSE_MYSTERY}
		}
	}

	quadrant := (position / 25) % len(themeCategories)

	return House{
		Type:     HOUSE_THEME,
		Category: themeCategories[quadrant],
	}
}

// ValidateMove 校验一次移动是否合法
// 距离不能超过骰子点数；中心格额外要求集齐所有字母
func ValidateMove(current int, target int, diceValue int, inventory string) error {
	if target < 0 || target >= BOARD_SIZE {
		return ErrOffBoard
	}

	distance := target - current
	if distance < 0 {
		distance = -distance
	}

	if distance > diceValue {
		return ErrMoveTooFar
	}

	if target == CENTER_POSITION && !HasAllLetters(inventory) {
		return ErrCenterLocked
	}

	return nil
}

// TeleportDest 返回传送目的地：环形列表中的下一格，绝不是原格
// 传给非传送格时原样返回
func TeleportDest(position int) int {
	for i, p := range teleportPositions {
		if p == position {
			return teleportPositions[(i+1)%len(teleportPositions)]
		}
	}

	return position
}

// PossibleMoves 计算一次掷骰后所有可达的位置
// 可以向前或向后走 1 到 diceValue 格；集齐字母后中心格也可达
func PossibleMoves(current int, diceValue int, inventory string) []int {
	seen := make(map[int]bool, diceValue*2+1)
	moves := make([]int, 0, diceValue*2+1)

	push := func(pos int) {
		if pos < 0 || pos >= BOARD_SIZE || seen[pos] {
			return
		}
		if pos == CENTER_POSITION && !HasAllLetters(inventory) {
			return
		}
		seen[pos] = true
		moves = append(moves, pos)
	}

	for i := 1; i <= diceValue; i++ {
		push(current + i)
		push(current - i)
	}

	return moves
}

// NextLetter 返回该分类下一个尚未收集的字母
// 分类未映射或字母已集齐时返回空串，不算错误
func NextLetter(category string, inventory string) string {
	letters, ok := categoryLetters[category]
	if !ok {
		return ""
	}

	for _, letter := range letters {
		if !strings.Contains(inventory, letter) {
			return letter
		}
	}

	return ""
}

// MissingLetter 返回目标词中第一个尚未收集的字母，集齐后返回空串
func MissingLetter(inventory string) string {
	for _, r := range TARGET_WORD {
		if !strings.ContainsRune(inventory, r) {
			return string(r)
		}
	}

	return ""
}

// HasAllLetters 判断是否集齐目标词的全部字母
// 按集合包含判断，顺序和重复都不影响结果
func HasAllLetters(inventory string) bool {
	return MissingLetter(inventory) == ""
}
