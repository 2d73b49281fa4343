package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"byte-battle-be/internal/service/dto"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// 找不到记录时返回的哨兵错误
var ErrNotFound = errors.New("记录不存在")

type Store struct {
	db *sql.DB
}

// Open 打开（不存在则创建）SQLite 数据库
// 启用 WAL、busy timeout 和外键约束
func Open(dsn string) (*Store, error) {
	dir := filepath.Dir(dsn)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("创建数据库目录 %s 失败: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(`PRAGMA foreign_keys = ON;`); err != nil {
		return nil, fmt.Errorf("设置 PRAGMA 失败: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

const schema = `
CREATE TABLE IF NOT EXISTS users (
    id              TEXT PRIMARY KEY,
    username        TEXT NOT NULL UNIQUE,
    password_digest TEXT NOT NULL,
    created_at      TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS rooms (
    id           TEXT PRIMARY KEY,
    code         TEXT NOT NULL UNIQUE,
    status       TEXT NOT NULL DEFAULT 'LOBBY',
    game_state   TEXT NOT NULL DEFAULT 'WAITING',
    current_turn INTEGER NOT NULL DEFAULT 0,
    host_id      TEXT NOT NULL REFERENCES users(id),
    created_at   TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS players (
    id        TEXT PRIMARY KEY,
    user_id   TEXT NOT NULL REFERENCES users(id),
    room_id   TEXT NOT NULL REFERENCES rooms(id) ON DELETE CASCADE,
    position  INTEGER NOT NULL DEFAULT 0,
    inventory TEXT NOT NULL DEFAULT '',
    is_host   INTEGER NOT NULL DEFAULT 0,
    UNIQUE(user_id, room_id)
);

CREATE TABLE IF NOT EXISTS questions (
    id            TEXT PRIMARY KEY,
    category      TEXT NOT NULL,
    question      TEXT NOT NULL,
    options       TEXT NOT NULL,
    correct_index INTEGER NOT NULL,
    difficulty    TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_players_room ON players(room_id);
CREATE INDEX IF NOT EXISTS idx_questions_category ON questions(category);
`

// Setup 建表并在题库为空时写入种子题目
func (s *Store) Setup() error {
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("建表失败: %w", err)
	}

	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM questions`).Scan(&count); err != nil {
		return fmt.Errorf("统计题目数量失败: %w", err)
	}

	if count > 0 {
		return nil
	}

	if err := s.seedQuestions(); err != nil {
		return err
	}

	zap.S().Infof("题库为空，已写入 %d 道种子题目", len(seedQuestions))

	return nil
}

// -------- users --------

func (s *Store) CreateUser(user dto.User) error {
	_, err := s.db.Exec(
		`INSERT INTO users (id, username, password_digest) VALUES (?, ?, ?)`,
		user.ID, user.Username, user.PasswordDigest,
	)
	if err != nil {
		return fmt.Errorf("创建用户失败: %w", err)
	}

	return nil
}

func (s *Store) FindUserByUsername(username string) (*dto.User, error) {
	var user dto.User

	err := s.db.QueryRow(
		`SELECT id, username, password_digest FROM users WHERE username = ?`,
		username,
	).Scan(&user.ID, &user.Username, &user.PasswordDigest)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("查询用户失败: %w", err)
	}

	return &user, nil
}

func (s *Store) FindUserByID(id string) (*dto.User, error) {
	var user dto.User

	err := s.db.QueryRow(
		`SELECT id, username, password_digest FROM users WHERE id = ?`,
		id,
	).Scan(&user.ID, &user.Username, &user.PasswordDigest)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("查询用户失败: %w", err)
	}

	return &user, nil
}

// -------- rooms --------

// CreateRoom 在同一个事务里写入房间和房主的玩家记录
func (s *Store) CreateRoom(room dto.Room, host dto.Player) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("开启事务失败: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO rooms (id, code, status, game_state, current_turn, host_id) VALUES (?, ?, ?, ?, ?, ?)`,
		room.ID, room.Code, room.Status, room.GameState, room.CurrentTurn, room.HostID,
	)
	if err != nil {
		return fmt.Errorf("创建房间失败: %w", err)
	}

	_, err = tx.Exec(
		`INSERT INTO players (id, user_id, room_id, position, inventory, is_host) VALUES (?, ?, ?, 0, '', 1)`,
		host.ID, host.UserID, room.ID,
	)
	if err != nil {
		return fmt.Errorf("创建房主玩家失败: %w", err)
	}

	return tx.Commit()
}

// FindRoomByCode 返回房间及其玩家列表
// 玩家按加入顺序排序，current_turn 以此顺序为准
func (s *Store) FindRoomByCode(code string) (*dto.Room, error) {
	var room dto.Room

	err := s.db.QueryRow(
		`SELECT id, code, status, game_state, current_turn, host_id FROM rooms WHERE code = ?`,
		code,
	).Scan(&room.ID, &room.Code, &room.Status, &room.GameState, &room.CurrentTurn, &room.HostID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("查询房间失败: %w", err)
	}

	rows, err := s.db.Query(
		`SELECT p.id, p.user_id, p.room_id, u.username, p.position, p.inventory, p.is_host
         FROM players p JOIN users u ON u.id = p.user_id
         WHERE p.room_id = ? ORDER BY p.rowid`,
		room.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("查询房间玩家失败: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p dto.Player
		if err := rows.Scan(&p.ID, &p.UserID, &p.RoomID, &p.Username, &p.Position, &p.Inventory, &p.IsHost); err != nil {
			return nil, fmt.Errorf("读取玩家记录失败: %w", err)
		}
		room.Players = append(room.Players, p)
	}

	return &room, rows.Err()
}

func (s *Store) ListRoomsByUser(userID string) ([]dto.RoomSummary, error) {
	rows, err := s.db.Query(
		`SELECT r.id, r.code, r.status, p.is_host
         FROM players p JOIN rooms r ON r.id = p.room_id
         WHERE p.user_id = ? ORDER BY r.created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("查询用户房间失败: %w", err)
	}
	defer rows.Close()

	summaries := make([]dto.RoomSummary, 0)

	for rows.Next() {
		var sum dto.RoomSummary
		if err := rows.Scan(&sum.ID, &sum.Code, &sum.Status, &sum.IsHost); err != nil {
			return nil, fmt.Errorf("读取房间记录失败: %w", err)
		}
		summaries = append(summaries, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range summaries {
		room, err := s.FindRoomByCode(summaries[i].Code)
		if err != nil {
			return nil, err
		}
		summaries[i].Players = room.Players
		summaries[i].PlayerCount = len(room.Players)
	}

	return summaries, nil
}

func (s *Store) UpdateRoomState(code string, status string, gameState string, currentTurn int) error {
	res, err := s.db.Exec(
		`UPDATE rooms SET status = ?, game_state = ?, current_turn = ? WHERE code = ?`,
		status, gameState, currentTurn, code,
	)
	if err != nil {
		return fmt.Errorf("更新房间状态失败: %w", err)
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

// -------- players --------

func (s *Store) CreatePlayer(p dto.Player) error {
	isHost := 0
	if p.IsHost {
		isHost = 1
	}

	_, err := s.db.Exec(
		`INSERT INTO players (id, user_id, room_id, position, inventory, is_host) VALUES (?, ?, ?, ?, ?, ?)`,
		p.ID, p.UserID, p.RoomID, p.Position, p.Inventory, isHost,
	)
	if err != nil {
		return fmt.Errorf("创建玩家失败: %w", err)
	}

	return nil
}

func (s *Store) FindPlayer(userID string, roomCode string) (*dto.Player, error) {
	var p dto.Player

	err := s.db.QueryRow(
		`SELECT p.id, p.user_id, p.room_id, u.username, p.position, p.inventory, p.is_host
         FROM players p
         JOIN users u ON u.id = p.user_id
         JOIN rooms r ON r.id = p.room_id
         WHERE p.user_id = ? AND r.code = ?`,
		userID, roomCode,
	).Scan(&p.ID, &p.UserID, &p.RoomID, &p.Username, &p.Position, &p.Inventory, &p.IsHost)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("查询玩家失败: %w", err)
	}

	return &p, nil
}

func (s *Store) UpdatePlayerPosition(playerID string, position int) error {
	_, err := s.db.Exec(`UPDATE players SET position = ? WHERE id = ?`, position, playerID)
	if err != nil {
		return fmt.Errorf("更新玩家位置失败: %w", err)
	}

	return nil
}

func (s *Store) UpdatePlayerInventory(playerID string, inventory string) error {
	_, err := s.db.Exec(`UPDATE players SET inventory = ? WHERE id = ?`, inventory, playerID)
	if err != nil {
		return fmt.Errorf("更新玩家物品栏失败: %w", err)
	}

	return nil
}

func (s *Store) DeletePlayer(playerID string) error {
	_, err := s.db.Exec(`DELETE FROM players WHERE id = ?`, playerID)
	if err != nil {
		return fmt.Errorf("删除玩家失败: %w", err)
	}

	return nil
}

// -------- questions --------

// PickQuestion 按分类随机抽一道题，difficulty 为空表示不限难度
func (s *Store) PickQuestion(category string, difficulty string) (*dto.Question, error) {
	query := `SELECT id, category, question, options, correct_index, difficulty FROM questions WHERE category = ?`
	args := []any{category}

	if difficulty != "" {
		query += ` AND difficulty = ?`
		args = append(args, difficulty)
	}

	query += ` ORDER BY RANDOM() LIMIT 1`

	var (
		q       dto.Question
		options string
	)

	err := s.db.QueryRow(query, args...).Scan(&q.ID, &q.Category, &q.Text, &options, &q.CorrectIndex, &q.Difficulty)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("抽题失败: %w", err)
	}

	q.Options = splitOptions(options)

	return &q, nil
}

func (s *Store) ListQuestions(category string, difficulty string, limit int) ([]dto.Question, error) {
	query := `SELECT id, category, question, options, correct_index, difficulty FROM questions WHERE 1=1`
	args := make([]any, 0, 3)

	if category != "" {
		query += ` AND category = ?`
		args = append(args, category)
	}
	if difficulty != "" {
		query += ` AND difficulty = ?`
		args = append(args, difficulty)
	}

	query += ` ORDER BY RANDOM() LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("查询题目失败: %w", err)
	}
	defer rows.Close()

	questions := make([]dto.Question, 0, limit)

	for rows.Next() {
		var (
			q       dto.Question
			options string
		)
		if err := rows.Scan(&q.ID, &q.Category, &q.Text, &options, &q.CorrectIndex, &q.Difficulty); err != nil {
			return nil, fmt.Errorf("读取题目失败: %w", err)
		}
		q.Options = splitOptions(options)
		questions = append(questions, q)
	}

	return questions, rows.Err()
}

// 选项在库里用 "|" 拼接存储，选项文本不含该字符
const optionSep = "|"

func splitOptions(options string) []string {
	return strings.Split(options, optionSep)
}

func joinOptions(options []string) string {
	return strings.Join(options, optionSep)
}
