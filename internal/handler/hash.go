package handler

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"

	"file-hash-service/internal/model"
	"file-hash-service/internal/service"
	"file-hash-service/pkg/validator"
)

const (
	hashRequestKey = "hash_request"

	maxFormBody = 10 << 20
)

type HashHandler struct {
	service   *service.HashService
	validator *validator.HashValidator
	logger    *zap.Logger
}

func NewHashHandler(svc *service.HashService, v *validator.HashValidator, logger *zap.Logger) *HashHandler {
	return &HashHandler{
		service:   svc,
		validator: v,
		logger:    logger,
	}
}

func (h *HashHandler) requestLogger(c *gin.Context) *zap.Logger {
	return h.logger.With(zap.String("request_id", GetRequestID(c)))
}

// ValidateRequest binds the JSON or form body and validates it before any
// handler runs. Invalid requests are answered with 400 and never reach the
// digest computation.
func (h *HashHandler) ValidateRequest(c *gin.Context) {
	logger := h.requestLogger(c)

	if err := parseFormBody(c.Request); err != nil {
		logger.Info("Input validation failed", zap.Error(err))
		c.AbortWithStatusJSON(http.StatusBadRequest, model.ErrorResponse{ErrorMsg: "invalid request body: " + err.Error()})
		return
	}

	var req model.HashRequest
	// Pick the binding by content type alone so GET requests may carry a body
	b := binding.Default(http.MethodPost, c.ContentType())
	if err := c.ShouldBindWith(&req, b); err != nil && !errors.Is(err, io.EOF) {
		logger.Info("Input validation failed", zap.Error(err))
		c.AbortWithStatusJSON(http.StatusBadRequest, model.ErrorResponse{ErrorMsg: "invalid request body: " + err.Error()})
		return
	}

	res := h.validator.ValidateRequest(&req)
	if !res.Valid {
		logger.Info("Input validation failed",
			zap.String("field", res.Err.Field),
			zap.String("error", res.ErrorMessage))
		c.AbortWithStatusJSON(http.StatusBadRequest, model.ErrorResponse{ErrorMsg: res.ErrorMessage})
		return
	}

	c.Set(hashRequestKey, &req)
	c.Next()
}

// parseFormBody fills PostForm from a url-encoded body on methods whose body
// net/http's ParseForm ignores, such as GET.
func parseFormBody(r *http.Request) error {
	if r.Body == nil || r.PostForm != nil {
		return nil
	}
	switch r.Method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return nil
	}
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if ct != binding.MIMEPOSTForm {
		return nil
	}

	data, err := io.ReadAll(io.LimitReader(r.Body, maxFormBody+1))
	if err != nil {
		return err
	}
	if int64(len(data)) > maxFormBody {
		return fmt.Errorf("form body too large")
	}
	values, err := url.ParseQuery(string(data))
	if err != nil {
		return err
	}

	// ParseForm rebuilds Form from PostForm plus the query string
	r.PostForm = values
	r.Form = nil
	return nil
}

// Hash computes the digest of a validated request
func (h *HashHandler) Hash(c *gin.Context) {
	logger := h.requestLogger(c)

	req, ok := c.Get(hashRequestKey)
	if !ok {
		logger.Error("hash handler reached without validated request")
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{ErrorMsg: "request was not validated"})
		return
	}
	hashReq := req.(*model.HashRequest)

	logger.Info("Received hash request",
		zap.String("algorithm", hashReq.Algorithm),
		zap.String("path", hashReq.Path))

	sum, err := h.service.Compute(c.Request.Context(), hashReq.Algorithm, hashReq.Path)
	if err != nil {
		logger.Error("Hash process failed",
			zap.Error(err),
			zap.String("algorithm", hashReq.Algorithm),
			zap.String("path", hashReq.Path))
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{ErrorMsg: err.Error()})
		return
	}

	resp := model.HashResponse{Algorithm: hashReq.Algorithm, Hash: sum}
	c.JSON(http.StatusOK, resp)

	logger.Info("Hash completed",
		zap.String("algorithm", resp.Algorithm),
		zap.String("hash", resp.Hash),
		zap.String("path", hashReq.Path))
}

// Algorithms lists the algorithms the endpoint accepts
func (h *HashHandler) Algorithms(c *gin.Context) {
	c.JSON(http.StatusOK, model.AlgorithmsResponse{Algorithms: h.validator.Algorithms()})
}
