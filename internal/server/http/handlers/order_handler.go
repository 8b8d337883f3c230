package handlers

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/smartxerox/internal/server/http/dto"
	"github.com/polkiloo/smartxerox/internal/usecase"
)

// MaxBatchFiles bounds the number of files accepted in one batch submission.
const MaxBatchFiles = 10

// OrderHandler manages student facing order endpoints.
type OrderHandler struct {
	facade OrderFacade
	opts   Options
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade, opts Options) *OrderHandler {
	return &OrderHandler{facade: facade, opts: opts}
}

func submissionFromForm(c *gin.Context) usecase.OrderSubmission {
	return usecase.OrderSubmission{
		StudentName: c.PostForm("student_name"),
		PhoneNumber: c.PostForm("phone_number"),
		Copies:      c.PostForm("copies"),
		ColorType:   c.PostForm("color_type"),
	}
}

// readUpload loads a multipart file into memory. Reading stops one byte past
// limit so the size check downstream still sees an oversized file.
func readUpload(fh *multipart.FileHeader, limit int64) (usecase.FileUpload, error) {
	f, err := fh.Open()
	if err != nil {
		return usecase.FileUpload{}, err
	}
	defer f.Close()

	var r io.Reader = f
	if limit > 0 {
		r = io.LimitReader(f, limit+1)
	}
	content, err := io.ReadAll(r)
	if err != nil {
		return usecase.FileUpload{}, err
	}
	return usecase.FileUpload{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Content:     content,
	}, nil
}

// Create handles POST /api/orders.
func (h *OrderHandler) Create(c *gin.Context) {
	var upload *usecase.FileUpload
	if fh, err := c.FormFile("file"); err == nil {
		file, err := readUpload(fh, h.opts.MaxUploadSize)
		if err != nil {
			badRequest(c, "Failed to read uploaded file")
			return
		}
		upload = &file
	}

	order, err := h.facade.CreateOrder(c.Request.Context(), submissionFromForm(c), upload)
	if err != nil {
		respondError(c, h.opts, err, "Order not found")
		return
	}

	c.JSON(http.StatusCreated, dto.OK("Order created successfully", toOrderResponse(*order)))
}

// CreateBatch handles POST /api/orders/batch.
func (h *OrderHandler) CreateBatch(c *gin.Context) {
	var headers []*multipart.FileHeader
	if form, err := c.MultipartForm(); err == nil {
		headers = form.File["files"]
	}
	if len(headers) > MaxBatchFiles {
		badRequest(c, fmt.Sprintf("Too many files. Maximum is %d per submission.", MaxBatchFiles))
		return
	}

	files := make([]usecase.FileUpload, 0, len(headers))
	for _, fh := range headers {
		file, err := readUpload(fh, h.opts.MaxUploadSize)
		if err != nil {
			badRequest(c, "Failed to read uploaded file")
			return
		}
		files = append(files, file)
	}

	result, err := h.facade.SubmitBatch(c.Request.Context(), submissionFromForm(c), files)
	if err != nil {
		respondError(c, h.opts, err, "Order not found")
		return
	}

	response := dto.BatchResponse{
		Succeeded: result.Succeeded(),
		Failed:    result.Failed(),
		Orders:    toOrderResponses(result.Orders),
		Errors:    make([]dto.BatchFailure, 0, len(result.Failures)),
	}
	for _, f := range result.Failures {
		response.Errors = append(response.Errors, dto.BatchFailure{FileName: f.FileName, Error: f.Err.Error()})
	}

	message := fmt.Sprintf("%d succeeded, %d failed", response.Succeeded, response.Failed)
	if response.Succeeded == 0 {
		c.JSON(http.StatusBadRequest, dto.Envelope{Success: false, Message: message, Data: response})
		return
	}
	c.JSON(http.StatusCreated, dto.OK(message, response))
}

// ListByPhone handles GET /api/orders/:phone.
func (h *OrderHandler) ListByPhone(c *gin.Context) {
	orders, err := h.facade.OrdersByPhone(c.Request.Context(), c.Param("phone"))
	if err != nil {
		respondError(c, h.opts, err, "Order not found")
		return
	}
	c.JSON(http.StatusOK, dto.OK("", toOrderResponses(orders)))
}

// Delete handles DELETE /api/orders/:id.
func (h *OrderHandler) Delete(c *gin.Context) {
	if err := h.facade.DeleteOrder(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.opts, err, "Order not found")
		return
	}
	c.JSON(http.StatusOK, dto.OK("Order deleted successfully", nil))
}
