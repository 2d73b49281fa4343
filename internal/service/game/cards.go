package game

import "math/rand"

// 卡片类型
const (
	CARD_LUCKY   = "LUCKY"
	CARD_UNLUCKY = "UNLUCKY"
	CARD_SPECIAL = "SPECIAL"
)

// 卡片效果标签
const (
	EFFECT_GAIN_LETTER = "GAIN_LETTER"
	EFFECT_LOSE_LETTER = "LOSE_LETTER"
	EFFECT_EXTRA_ROLL  = "EXTRA_ROLL"
	EFFECT_SKIP_TURN   = "SKIP_TURN"
	EFFECT_NONE        = "NONE"
)

type Card struct {
	Type   string `json:"type"`
	Text   string `json:"text"`
	Effect string `json:"effect"`
}

// 神秘格卡组，只读数据
var cardDeck = []Card{
	{Type: CARD_LUCKY, Text: "Sorte grande! Ganhas uma letra.", Effect: EFFECT_GAIN_LETTER},
	{Type: CARD_LUCKY, Text: "Turbo! Rolas o dado outra vez.", Effect: EFFECT_EXTRA_ROLL},
	{Type: CARD_LUCKY, Text: "Dia tranquilo. Nada acontece.", Effect: EFFECT_NONE},
	{Type: CARD_UNLUCKY, Text: "Azar! Perdes a última letra recolhida.", Effect: EFFECT_LOSE_LETTER},
	{Type: CARD_UNLUCKY, Text: "Bloqueado! Perdes a próxima vez.", Effect: EFFECT_SKIP_TURN},
	{Type: CARD_SPECIAL, Text: "O tabuleiro treme... mas nada muda.", Effect: EFFECT_NONE},
}

// DrawCard 从卡组均匀随机抽一张
func DrawCard() Card {
	return cardDeck[rand.Intn(len(cardDeck))]
}
