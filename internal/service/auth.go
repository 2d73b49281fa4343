package service

import (
	"errors"
	"time"

	"byte-battle-be/internal/service/dto"
	"byte-battle-be/internal/service/game"
	"byte-battle-be/internal/storage"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 7 * 24 * time.Hour

type AuthService struct {
	store  *storage.Store
	secret []byte
}

func NewAuthService(store *storage.Store, secret string) *AuthService {
	return &AuthService{
		store:  store,
		secret: []byte(secret),
	}
}

func (as *AuthService) Register(req dto.RegisterRequest) (dto.AuthResponse, error) {
	if req.Username == "" {
		return dto.AuthResponse{}, errors.New("用户名不能为空")
	}
	if len(req.Password) < 4 {
		return dto.AuthResponse{}, errors.New("密码至少 4 位")
	}

	if _, err := as.store.FindUserByUsername(req.Username); err == nil {
		return dto.AuthResponse{}, errors.New("用户名已被占用")
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		zap.S().Errorf("生成密码摘要失败：%v", err)
		return dto.AuthResponse{}, errors.New("注册失败")
	}

	user := dto.User{
		ID:             game.GenID(),
		Username:       req.Username,
		PasswordDigest: string(digest),
	}

	if err := as.store.CreateUser(user); err != nil {
		zap.S().Errorf("用户 %s 写入存储失败：%v", req.Username, err)
		return dto.AuthResponse{}, errors.New("注册失败")
	}

	token, err := as.issueToken(user.ID)
	if err != nil {
		return dto.AuthResponse{}, err
	}

	zap.S().Infof("用户 %s 注册成功", req.Username)

	return dto.AuthResponse{Token: token, User: user}, nil
}

func (as *AuthService) Login(req dto.LoginRequest) (dto.AuthResponse, error) {
	user, err := as.store.FindUserByUsername(req.Username)
	if err != nil {
		return dto.AuthResponse{}, errors.New("用户名或密码错误")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordDigest), []byte(req.Password)); err != nil {
		return dto.AuthResponse{}, errors.New("用户名或密码错误")
	}

	token, err := as.issueToken(user.ID)
	if err != nil {
		return dto.AuthResponse{}, err
	}

	return dto.AuthResponse{Token: token, User: *user}, nil
}

func (as *AuthService) FindUser(userID string) (*dto.User, error) {
	user, err := as.store.FindUserByID(userID)
	if err != nil {
		return nil, errors.New("用户不存在")
	}

	return user, nil
}

// ValidateToken 校验 JWT 并返回其中的用户 ID
func (as *AuthService) ValidateToken(tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&jwt.RegisteredClaims{},
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("签名算法不匹配")
			}
			return as.secret, nil
		},
	)
	if err != nil || !token.Valid {
		return "", errors.New("令牌无效")
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", errors.New("令牌无效")
	}

	return claims.Subject, nil
}

func (as *AuthService) issueToken(userID string) (string, error) {
	now := time.Now()

	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(as.secret)
	if err != nil {
		zap.S().Errorf("签发令牌失败：%v", err)
		return "", errors.New("签发令牌失败")
	}

	return signed, nil
}

