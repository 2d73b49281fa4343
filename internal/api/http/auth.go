package http

import (
	"strings"

	"byte-battle-be/internal/service/dto"
	"byte-battle-be/internal/state"

	"github.com/kataras/iris/v12"
)

const ctxKeyUserID = "user_id"

// RequireAuth 校验 Authorization 头里的 Bearer 令牌
// 校验通过后把用户 ID 放进请求上下文
func RequireAuth(appState *state.AppState) iris.Handler {
	return func(ctx iris.Context) {
		token := strings.TrimPrefix(ctx.GetHeader("Authorization"), "Bearer ")
		if token == "" {
			ctx.StatusCode(iris.StatusUnauthorized)
			ctx.JSON(iris.Map{
				"error": "缺少认证令牌",
			})
			return
		}

		userID, err := appState.AuthSvc.ValidateToken(token)
		if err != nil {
			ctx.StatusCode(iris.StatusUnauthorized)
			ctx.JSON(iris.Map{
				"error": err.Error(),
			})
			return
		}

		ctx.Values().Set(ctxKeyUserID, userID)
		ctx.Next()
	}
}

func Register(appState *state.AppState) iris.Handler {
	return func(ctx iris.Context) {
		var req dto.RegisterRequest

		if err := ctx.ReadJSON(&req); err != nil {
			ctx.StatusCode(iris.StatusBadRequest)
			ctx.JSON(iris.Map{
				"error": "请求参数无效",
			})
			return
		}

		resp, err := appState.AuthSvc.Register(req)
		if err != nil {
			ctx.StatusCode(iris.StatusBadRequest)
			ctx.JSON(iris.Map{
				"error": err.Error(),
			})
			return
		}

		ctx.JSON(resp)
	}
}

func Login(appState *state.AppState) iris.Handler {
	return func(ctx iris.Context) {
		var req dto.LoginRequest

		if err := ctx.ReadJSON(&req); err != nil {
			ctx.StatusCode(iris.StatusBadRequest)
			ctx.JSON(iris.Map{
				"error": "请求参数无效",
			})
			return
		}

		resp, err := appState.AuthSvc.Login(req)
		if err != nil {
			ctx.StatusCode(iris.StatusUnauthorized)
			ctx.JSON(iris.Map{
				"error": err.Error(),
			})
			return
		}

		ctx.JSON(resp)
	}
}

func Me(appState *state.AppState) iris.Handler {
	return func(ctx iris.Context) {
		userID := ctx.Values().GetString(ctxKeyUserID)

		user, err := appState.AuthSvc.FindUser(userID)
		if err != nil {
			ctx.StatusCode(iris.StatusNotFound)
			ctx.JSON(iris.Map{
				"error": err.Error(),
			})
			return
		}

		ctx.JSON(user)
	}
}
