package storage

import (
	"fmt"

	"github.com/google/uuid"
)

type seedQuestion struct {
	category     string
	text         string
	options      []string
	correctIndex int
	difficulty   string
}

// 内置题库，首次启动时写入
// 四个分类对应棋盘的四个象限：PSI 编程、MAT 数学、GAE 常识、FIS 物理
var seedQuestions = []seedQuestion{
	// PSI
	{"PSI", "Qual é a função principal de um Compilador?", []string{"Traduzir código-fonte para código de máquina", "Executar hardware", "Limpar RAM"}, 0, "medium"},
	{"PSI", "O que significa HTML?", []string{"HyperText Markup Language", "High Tech Modern Language", "Home Tool Markup Language"}, 0, "easy"},
	{"PSI", "Qual estrutura de dados usa LIFO?", []string{"Fila", "Pilha", "Lista Ligada"}, 1, "medium"},
	{"PSI", "O que é recursão?", []string{"Uma função que chama a si mesma", "Um loop infinito", "Um tipo de variável"}, 0, "easy"},
	{"PSI", "Qual a complexidade do Binary Search?", []string{"O(n)", "O(log n)", "O(n²)"}, 1, "hard"},
	{"PSI", "O que é um ORM?", []string{"Object-Relational Mapping", "Online Resource Manager", "Open Runtime Module"}, 0, "medium"},
	{"PSI", "Qual padrão de design usa 'getInstance()'?", []string{"Factory", "Singleton", "Observer"}, 1, "hard"},
	{"PSI", "O que é uma API REST?", []string{"Interface de programação baseada em HTTP", "Linguagem de programação", "Banco de dados"}, 0, "easy"},
	{"PSI", "Qual é o propósito do Git?", []string{"Controle de versão", "Edição de texto", "Compilação de código"}, 0, "easy"},
	{"PSI", "O que é polimorfismo em OOP?", []string{"Herdar de múltiplas classes", "Mesma interface, diferentes implementações", "Esconder dados"}, 1, "hard"},

	// MAT
	{"MAT", "Qual é a derivada de x²?", []string{"2x", "x", "x²"}, 0, "easy"},
	{"MAT", "Quanto é 15% de 200?", []string{"25", "30", "35"}, 1, "easy"},
	{"MAT", "Qual é o valor de π aproximadamente?", []string{"3.14", "2.71", "1.62"}, 0, "easy"},
	{"MAT", "Qual é a raiz quadrada de 144?", []string{"10", "12", "14"}, 1, "easy"},
	{"MAT", "O que é um número primo?", []string{"Divisível apenas por 1 e ele mesmo", "Número par", "Número negativo"}, 0, "easy"},
	{"MAT", "Qual é o limite de sen(x)/x quando x→0?", []string{"0", "1", "∞"}, 1, "hard"},
	{"MAT", "Quantos lados tem um dodecágono?", []string{"10", "12", "15"}, 1, "medium"},
	{"MAT", "Qual é o fatorial de 5 (5!)?", []string{"60", "120", "150"}, 1, "medium"},
	{"MAT", "O que é logaritmo natural (ln)?", []string{"Log base 10", "Log base e", "Log base 2"}, 1, "medium"},
	{"MAT", "Qual é a fórmula de Bhaskara?", []string{"(-b±√(b²-4ac))/2a", "a²+b²=c²", "E=mc²"}, 0, "hard"},

	// GAE
	{"GAE", "Qual é a capital de Portugal?", []string{"Porto", "Lisboa", "Braga"}, 1, "easy"},
	{"GAE", "Quantos continentes existem?", []string{"5", "6", "7"}, 2, "easy"},
	{"GAE", "Qual é o maior oceano do mundo?", []string{"Atlântico", "Índico", "Pacífico"}, 2, "easy"},
	{"GAE", "Em que ano terminou a Segunda Guerra Mundial?", []string{"1943", "1945", "1950"}, 1, "medium"},
	{"GAE", "Qual é a língua mais falada no mundo?", []string{"Inglês", "Mandarim", "Espanhol"}, 1, "medium"},
	{"GAE", "Qual país tem a maior população?", []string{"Índia", "EUA", "China"}, 0, "medium"},
	{"GAE", "Quem pintou a Mona Lisa?", []string{"Michelangelo", "Leonardo da Vinci", "Rafael"}, 1, "easy"},
	{"GAE", "Qual é o maior deserto do mundo?", []string{"Saara", "Antártida", "Gobi"}, 1, "hard"},
	{"GAE", "Em que ano foi fundada a ONU?", []string{"1942", "1945", "1950"}, 1, "hard"},
	{"GAE", "Qual é o rio mais longo do mundo?", []string{"Amazonas", "Nilo", "Yangtze"}, 1, "medium"},

	// FIS
	{"FIS", "Qual é a velocidade da luz?", []string{"300.000 km/s", "150.000 km/s", "500.000 km/s"}, 0, "easy"},
	{"FIS", "O que é a Lei de Newton F=ma?", []string{"Força = massa × aceleração", "Força = velocidade × tempo", "Energia = massa × velocidade"}, 0, "easy"},
	{"FIS", "Qual partícula tem carga negativa?", []string{"Próton", "Neutrão", "Eletrão"}, 2, "easy"},
	{"FIS", "O que mede o Voltímetro?", []string{"Corrente", "Tensão", "Resistência"}, 1, "medium"},
	{"FIS", "Qual é a unidade de frequência?", []string{"Watt", "Hertz", "Joule"}, 1, "medium"},
	{"FIS", "O que é o efeito Doppler?", []string{"Mudança de frequência por movimento", "Reflexão da luz", "Absorção de calor"}, 0, "hard"},
	{"FIS", "Qual é a constante gravitacional aproximada na Terra?", []string{"9.8 m/s²", "6.7 m/s²", "12.5 m/s²"}, 0, "medium"},
	{"FIS", "O que é energia cinética?", []string{"Energia do movimento", "Energia armazenada", "Energia térmica"}, 0, "easy"},
	{"FIS", "Quem formulou a teoria da relatividade?", []string{"Newton", "Einstein", "Bohr"}, 1, "easy"},
	{"FIS", "O que é um fotão?", []string{"Partícula de luz", "Partícula de matéria", "Onda sonora"}, 0, "hard"},
}

func (s *Store) seedQuestions() error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("开启事务失败: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(
		`INSERT INTO questions (id, category, question, options, correct_index, difficulty) VALUES (?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("准备写入题目失败: %w", err)
	}
	defer stmt.Close()

	for _, q := range seedQuestions {
		id := uuid.New().String()[:8]
		if _, err := stmt.Exec(id, q.category, q.text, joinOptions(q.options), q.correctIndex, q.difficulty); err != nil {
			return fmt.Errorf("写入题目失败: %w", err)
		}
	}

	return tx.Commit()
}
