package celltechserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"

	producthttpmapper "github.com/Apurer/cell-tech-api/internal/domains/products/adapters/http/mapper"
	productsports "github.com/Apurer/cell-tech-api/internal/domains/products/ports"
	apierrors "github.com/Apurer/cell-tech-api/internal/shared/errors"
	"github.com/Apurer/cell-tech-api/internal/shared/ref"
)

// ProductsAPI serves the phone catalogue.
type ProductsAPI struct {
	service   productsports.Service
	responder *apierrors.ChainedResponder
}

func NewProductsAPI(service productsports.Service, responder *apierrors.ChainedResponder) ProductsAPI {
	return ProductsAPI{service: service, responder: responder}
}

// Get /api/v1/products
// Optional query: brand, status, search
func (api *ProductsAPI) ListProducts(c *gin.Context) {
	var params producthttpmapper.ListProductsParams
	query := c.Request.URL.Query()
	for name, dest := range map[string]**string{
		"brand":  &params.Brand,
		"status": &params.Status,
		"search": &params.Search,
	} {
		if err := runtime.BindQueryParameter("form", true, false, name, query, dest); err != nil {
			api.responder.Respond(c, apierrors.ErrValidation.WithCause(err))
			return
		}
	}
	products, err := api.service.ListProducts(c.Request.Context(), producthttpmapper.ToListFilter(params))
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	api.responder.Success(c, http.StatusOK, "Data Found!", producthttpmapper.FromProjections(products))
}

// Get /api/v1/product/:id
func (api *ProductsAPI) GetProduct(c *gin.Context) {
	id, err := ref.Parse(c.Param("id"))
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	product, err := api.service.GetProduct(c.Request.Context(), id)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	api.responder.Success(c, http.StatusOK, "Data Found!", producthttpmapper.FromProjection(product))
}

// Post /api/v1/product
func (api *ProductsAPI) CreateProduct(c *gin.Context) {
	var payload producthttpmapper.CreateProductRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.responder.Respond(c, apierrors.ErrValidation.WithCause(err))
		return
	}
	input, err := producthttpmapper.ToCreateInput(payload)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	product, err := api.service.CreateProduct(c.Request.Context(), input)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	api.responder.Success(c, http.StatusCreated, "Product Added successfully!", producthttpmapper.FromProjection(product))
}

// Patch /api/v1/product/:id
func (api *ProductsAPI) PatchProduct(c *gin.Context) {
	id, err := ref.Parse(c.Param("id"))
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	var payload producthttpmapper.PatchProductRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.responder.Respond(c, apierrors.ErrValidation.WithCause(err))
		return
	}
	input, err := producthttpmapper.ToPatchInput(id, payload)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	product, err := api.service.PatchProduct(c.Request.Context(), input)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	api.responder.Success(c, http.StatusOK, "Product Updated successfully!", producthttpmapper.FromProjection(product))
}

// Delete /api/v1/product/:id
func (api *ProductsAPI) DeleteProduct(c *gin.Context) {
	id, err := ref.Parse(c.Param("id"))
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	if err := api.service.DeleteProduct(c.Request.Context(), id); err != nil {
		api.responder.RespondError(c, err)
		return
	}
	api.responder.Success(c, http.StatusOK, "Product Deleted successfully!", producthttpmapper.DeleteProductsResult{DeletedCount: 1})
}

// Delete /api/v1/products?ids=a,b,c
// Any malformed id rejects the whole request before anything is deleted.
func (api *ProductsAPI) DeleteProducts(c *gin.Context) {
	ids, err := ref.ParseList(c.Query("ids"))
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	deleted, err := api.service.DeleteProducts(c.Request.Context(), ids)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	api.responder.Success(c, http.StatusOK, "Products Deleted successfully!", producthttpmapper.DeleteProductsResult{DeletedCount: deleted})
}
