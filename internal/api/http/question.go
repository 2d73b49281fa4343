package http

import (
	"byte-battle-be/internal/service/dto"
	"byte-battle-be/internal/state"

	"github.com/kataras/iris/v12"
)

// ListQuestions 返回题库，支持按分类过滤
// 不暴露正确答案
func ListQuestions(appState *state.AppState) iris.Handler {
	return func(ctx iris.Context) {
		category := ctx.URLParam("category")
		difficulty := ctx.URLParam("difficulty")
		limit := ctx.URLParamIntDefault("limit", 50)

		questions, err := appState.Store.ListQuestions(category, difficulty, limit)
		if err != nil {
			ctx.StatusCode(iris.StatusInternalServerError)
			ctx.JSON(iris.Map{
				"error": "查询题库失败",
			})
			return
		}

		sanitized := make([]dto.PublicQuestion, 0, len(questions))
		for _, q := range questions {
			sanitized = append(sanitized, q.Sanitize())
		}

		ctx.JSON(sanitized)
	}
}
