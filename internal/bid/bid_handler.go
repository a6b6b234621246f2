package bid

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshu-sajeev/bidboard/common"
	"github.com/joshu-sajeev/bidboard/internal/dto"
	"github.com/joshu-sajeev/bidboard/middleware"
)

type BidHandler struct {
	service BidServiceInterface
}

func NewBidHandler(s BidServiceInterface) *BidHandler {
	return &BidHandler{service: s}
}

var _ BidHandlerInterface = (*BidHandler)(nil)

// Create handles POST /add-bid. A second bid by the same email on the same
// job is answered with HTTP 400 and kind duplicate_bid.
func (h *BidHandler) Create(c *gin.Context) {
	var req dto.BidCreateDTO

	if !middleware.Bind(c, &req) {
		c.Abort()
		return
	}

	resp, err := h.service.PlaceBid(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		c.Abort()
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// List handles GET /bids/:email?buyer=. Any non-empty buyer value selects
// the bids received by the job owner.
func (h *BidHandler) List(c *gin.Context) {
	email := c.Param("email")
	if !middleware.ValidEmail(email) {
		c.Error(common.KindErrf(http.StatusBadRequest, common.KindValidation, "invalid email"))
		return
	}

	bids, err := h.service.ListBids(c.Request.Context(), email, c.Query("buyer") != "")
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, bids)
}

// UpdateStatus handles PATCH /bid-status-update/:id.
func (h *BidHandler) UpdateStatus(c *gin.Context) {
	id := c.Param("id")
	if !middleware.ValidID(id) {
		c.Error(common.KindErrf(http.StatusBadRequest, common.KindValidation, "invalid ID"))
		return
	}

	var body dto.BidStatusUpdateDTO
	if !middleware.Bind(c, &body) {
		return
	}

	resp, err := h.service.UpdateStatus(c.Request.Context(), id, body.Status)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
