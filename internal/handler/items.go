package handler

import (
	"net/http"

	"thrift-store-be/internal/auth"
	"thrift-store-be/internal/item"
	"thrift-store-be/internal/transport"
	"thrift-store-be/internal/upload"
)

type itemBody struct {
	Title       *string         `json:"title"`
	Description *string         `json:"description"`
	Price       *transport.Text `json:"price"`
	Image       *string         `json:"image"`
}

// itemFields reads an item payload from either a JSON body or a multipart
// form whose "image" part may carry a file. The returned func releases the
// uploaded file.
func itemFields(r *http.Request) (itemBody, *upload.File, func(), error) {
	noop := func() {}
	if !transport.IsMultipart(r) {
		var b itemBody
		if err := transport.Decode(r, &b); err != nil {
			return b, nil, noop, err
		}
		return b, nil, noop, nil
	}

	form, err := transport.ParseForm(r)
	if err != nil {
		return itemBody{}, nil, noop, err
	}
	b := itemBody{
		Title:       form.Optional("title"),
		Description: form.Optional("description"),
		Image:       form.Optional("image"),
	}
	if p := form.Optional("price"); p != nil {
		t := transport.Text(*p)
		b.Price = &t
	}

	file, release, err := form.File("image")
	if err != nil {
		return itemBody{}, nil, noop, err
	}
	return b, file, release, nil
}

func (h *Handler) ListItems(w http.ResponseWriter, r *http.Request) error {
	sellerID, err := transport.QueryID(r, "seller_id")
	if err != nil {
		return err
	}

	items, err := h.items.List(r.Context(), item.ListOptions{
		Search:   r.URL.Query().Get("q"),
		SellerID: sellerID,
		Limit:    transport.QueryInt(r, "limit"),
		Page:     transport.QueryInt(r, "page"),
	})
	if err != nil {
		return err
	}
	transport.JSON(w, r, http.StatusOK, items)
	return nil
}

func (h *Handler) MyItems(w http.ResponseWriter, r *http.Request, id auth.Identity) error {
	items, err := h.items.ListMine(r.Context(), id)
	if err != nil {
		return err
	}
	transport.JSON(w, r, http.StatusOK, items)
	return nil
}

func (h *Handler) GetItem(w http.ResponseWriter, r *http.Request) error {
	itemID, err := transport.ParamID(r, "id")
	if err != nil {
		return err
	}

	it, err := h.items.Get(r.Context(), itemID)
	if err != nil {
		return err
	}
	transport.JSON(w, r, http.StatusOK, it)
	return nil
}

func (h *Handler) CreateItem(w http.ResponseWriter, r *http.Request, id auth.Identity) error {
	b, file, release, err := itemFields(r)
	if err != nil {
		return err
	}
	defer release()

	in := item.CreateInput{
		Description: b.Description,
		Price:       b.Price.String(),
		Image:       b.Image,
		ImageFile:   file,
	}
	if b.Title != nil {
		in.Title = *b.Title
	}

	it, err := h.items.Create(r.Context(), id, in)
	if err != nil {
		return err
	}
	transport.JSON(w, r, http.StatusCreated, it)
	return nil
}

func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request, id auth.Identity) error {
	itemID, err := transport.ParamID(r, "id")
	if err != nil {
		return err
	}

	b, file, release, err := itemFields(r)
	if err != nil {
		return err
	}
	defer release()

	it, err := h.items.Update(r.Context(), id, itemID, item.UpdateInput{
		Title:       b.Title,
		Description: b.Description,
		Price:       b.Price.StringPtr(),
		Image:       b.Image,
		ImageFile:   file,
	})
	if err != nil {
		return err
	}
	transport.JSON(w, r, http.StatusOK, it)
	return nil
}

func (h *Handler) DeleteItem(w http.ResponseWriter, r *http.Request, id auth.Identity) error {
	itemID, err := transport.ParamID(r, "id")
	if err != nil {
		return err
	}

	if err := h.items.Delete(r.Context(), id, itemID); err != nil {
		return err
	}
	transport.JSON(w, r, http.StatusOK, transport.Message{Message: "Item deleted"})
	return nil
}
