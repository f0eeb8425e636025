package handlers

import (
	"backoffice/internal/domain"
	"backoffice/internal/domain/models"

	"github.com/gin-gonic/gin"
)

func (h Handler) CreateCustomer(c *gin.Context) {
	var p models.CustomerPayload
	if !BindJSONOrError(c, &p) {
		return
	}
	cust, err := h.Services.Customers.Create(c.Request.Context(), p)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondCreated(c, cust)
}

func (h Handler) ListCustomers(c *gin.Context) {
	list, err := h.Services.Customers.List(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, list)
}

func (h Handler) GetCustomer(c *gin.Context) {
	cust, err := h.Services.Customers.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if cust == nil {
		RespondDomainError(c, domain.NotFoundError{Resource: "Customer"})
		return
	}
	respondOK(c, cust)
}
