package handler

import (
	"Sirius/config"
	"Sirius/middleware"
	"Sirius/pkg/context"
	"Sirius/pkg/log"
	"Sirius/pkg/response"
	"Sirius/service"
	"Sirius/types"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	msgNoMemes       = "no memes available"
	msgMemeNotFound  = "meme does not exist"
	msgNoData        = "no data"
	msgAlreadyInCart = "meme already in cart"

	maxUploadSize = 10 << 20
)

type Meme struct {
	Config        *config.Config
	MemeService   service.IMemeService
	RatingService service.IRatingService
	CartService   service.ICartService
}

func (m *Meme) RegisterRouter(r gin.IRouter) {
	g := r.Group("/v1/meme", middleware.Auth([]byte(m.Config.Jwt.Secret)))
	g.GET("", context.Wrap(m.List))
	g.GET("/random", context.Wrap(m.Random))
	g.GET("/trendy", context.Wrap(m.Trendy))
	g.GET("/download/:id", context.Wrap(m.Download))
	g.POST("/upload", context.Wrap(m.Upload))
	g.GET("/:id", context.Wrap(m.Get))
	g.POST("/:id/cart", context.Wrap(m.AddToCart))
	g.POST("/:id/mark", context.Wrap(m.Mark))
}

// List 按购物车列出 meme
func (m *Meme) List(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, err.Error())
	}
	var req types.ListMemesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		return response.NewError(http.StatusBadRequest, err.Error())
	}

	memes, err := m.MemeService.List(c.Request.Context(), req.CartType, userID)
	if err != nil {
		return badRequest(err)
	}
	if len(memes) == 0 {
		response.Message(c, msgNoMemes)
		return nil
	}
	response.Success(c, memes)
	return nil
}

func (m *Meme) Random(c *gin.Context) error {
	meme, err := m.MemeService.Random(c.Request.Context())
	if err != nil {
		return err
	}
	if meme == nil {
		response.Message(c, msgNoMemes)
		return nil
	}
	response.Success(c, meme)
	return nil
}

func (m *Meme) Trendy(c *gin.Context) error {
	meme, err := m.MemeService.Trendy(c.Request.Context())
	if err != nil {
		return err
	}
	if meme == nil {
		response.Message(c, msgNoData)
		return nil
	}
	response.Success(c, meme)
	return nil
}

func (m *Meme) Get(c *gin.Context) error {
	memeID, err := pathID(c)
	if err != nil {
		return err
	}
	meme, err := m.MemeService.Get(c.Request.Context(), memeID)
	if errors.Is(err, types.ErrMemeNotFound) {
		response.Message(c, msgMemeNotFound)
		return nil
	}
	if err != nil {
		return err
	}
	response.Success(c, meme)
	return nil
}

// Download 以附件形式返回原始文件
func (m *Meme) Download(c *gin.Context) error {
	memeID, err := pathID(c)
	if err != nil {
		return err
	}
	file, err := m.MemeService.Download(c.Request.Context(), memeID)
	if errors.Is(err, types.ErrMemeNotFound) || errors.Is(err, types.ErrObjectNotFound) {
		return response.NewError(http.StatusNotFound, msgNoData)
	}
	if err != nil {
		return err
	}
	defer file.Body.Close()

	c.Header("Content-Disposition", "attachment; filename*=utf-8''"+url.PathEscape(file.Filename))
	c.Header("Content-Type", file.ContentType)
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, file.Body); err != nil {
		log.L.Warn("stream meme", zap.Int64("meme_id", memeID), zap.Error(err))
	}
	return nil
}

func (m *Meme) Upload(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, err.Error())
	}
	header, err := c.FormFile("file")
	if err != nil {
		return response.NewError(http.StatusBadRequest, err.Error())
	}
	if header.Size > maxUploadSize {
		return response.NewError(http.StatusBadRequest, "file size exceeds 10MB")
	}

	file, err := header.Open()
	if err != nil {
		return response.NewError(http.StatusBadRequest, err.Error())
	}
	defer file.Close()

	out, err := m.MemeService.Upload(c.Request.Context(), &service.UploadOpt{
		UserID:      userID,
		Caption:     c.PostForm("caption"),
		Filename:    header.Filename,
		Size:        header.Size,
		ContentType: header.Header.Get("Content-Type"),
		Body:        file,
	})
	if err != nil {
		if errors.Is(err, types.ErrEmptyCaption) {
			return response.NewError(http.StatusBadRequest, err.Error())
		}
		return err
	}
	response.Success(c, out)
	return nil
}

// AddToCart 加入个人购物车
func (m *Meme) AddToCart(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, err.Error())
	}
	memeID, err := pathID(c)
	if err != nil {
		return err
	}

	err = m.CartService.AddToPersonal(c.Request.Context(), userID, memeID)
	switch {
	case errors.Is(err, types.ErrAlreadyInCart):
		response.Message(c, msgAlreadyInCart)
		return nil
	case errors.Is(err, types.ErrMemeNotFound):
		response.Message(c, msgMemeNotFound)
		return nil
	case err != nil:
		return err
	}
	response.Message(c, "success")
	return nil
}

// Mark 评分，返回最新聚合
func (m *Meme) Mark(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, err.Error())
	}
	memeID, err := pathID(c)
	if err != nil {
		return err
	}
	var req types.MarkMemeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		return response.NewError(http.StatusBadRequest, err.Error())
	}

	meme, err := m.RatingService.Mark(c.Request.Context(), userID, memeID, req.Mark)
	switch {
	case errors.Is(err, types.ErrMemeNotFound):
		response.Message(c, msgMemeNotFound)
		return nil
	case errors.Is(err, types.ErrUserNotFound):
		return response.NewError(http.StatusUnauthorized, err.Error())
	case err != nil:
		return badRequest(err)
	}
	response.Success(c, meme)
	return nil
}

func pathID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, response.NewError(http.StatusBadRequest, fmt.Sprintf("invalid id %q", c.Param("id")))
	}
	return id, nil
}

// badRequest 参数类错误转 400，其余原样交给 Wrap
func badRequest(err error) error {
	if errors.Is(err, types.ErrInvalidMark) || errors.Is(err, types.ErrInvalidCartType) {
		return response.NewError(http.StatusBadRequest, err.Error())
	}
	return err
}
