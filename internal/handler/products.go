package handler

import (
	"net/http"

	"thrift-store-be/internal/auth"
	"thrift-store-be/internal/product"
	"thrift-store-be/internal/transport"
	"thrift-store-be/internal/upload"
)

type productBody struct {
	Name        *string         `json:"name"`
	Description *string         `json:"description"`
	Price       *transport.Text `json:"price"`
	ImageURL    *string         `json:"image_url"`
	Category    *string         `json:"category"`
}

type imageResponse struct {
	ImageURL string `json:"imageUrl"`
}

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) error {
	products, err := h.products.GetAll(r.Context())
	if err != nil {
		return err
	}
	transport.JSON(w, r, http.StatusOK, products)
	return nil
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) error {
	productID, err := transport.ParamID(r, "id")
	if err != nil {
		return err
	}

	p, err := h.products.GetByID(r.Context(), productID)
	if err != nil {
		return err
	}
	transport.JSON(w, r, http.StatusOK, p)
	return nil
}

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request, id auth.Identity) error {
	var b productBody
	if err := transport.Decode(r, &b); err != nil {
		return err
	}

	in := product.CreateInput{
		Description: b.Description,
		Price:       b.Price.String(),
		ImageURL:    b.ImageURL,
		Category:    b.Category,
	}
	if b.Name != nil {
		in.Name = *b.Name
	}

	p, err := h.products.Create(r.Context(), id, in)
	if err != nil {
		return err
	}
	transport.JSON(w, r, http.StatusCreated, p)
	return nil
}

func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request, id auth.Identity) error {
	productID, err := transport.ParamID(r, "id")
	if err != nil {
		return err
	}

	var b productBody
	if err := transport.Decode(r, &b); err != nil {
		return err
	}

	p, err := h.products.Update(r.Context(), id, productID, product.UpdateInput{
		Name:        b.Name,
		Description: b.Description,
		Price:       b.Price.StringPtr(),
		ImageURL:    b.ImageURL,
		Category:    b.Category,
	})
	if err != nil {
		return err
	}
	transport.JSON(w, r, http.StatusOK, p)
	return nil
}

func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request, id auth.Identity) error {
	productID, err := transport.ParamID(r, "id")
	if err != nil {
		return err
	}

	if err := h.products.Delete(r.Context(), id, productID); err != nil {
		return err
	}
	transport.JSON(w, r, http.StatusOK, transport.Message{Message: "Product deleted"})
	return nil
}

func (h *Handler) UploadProductImage(w http.ResponseWriter, r *http.Request, _ auth.Identity) error {
	if !transport.IsMultipart(r) {
		return upload.ErrNoFile
	}
	form, err := transport.ParseForm(r)
	if err != nil {
		return err
	}
	file, release, err := form.File("image")
	if err != nil {
		return err
	}
	defer release()
	if file == nil {
		return upload.ErrNoFile
	}

	url, err := h.products.UploadImage(r.Context(), *file)
	if err != nil {
		return err
	}
	transport.JSON(w, r, http.StatusOK, imageResponse{ImageURL: url})
	return nil
}
