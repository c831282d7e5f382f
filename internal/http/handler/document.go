package handler

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"caseflow/internal/service"
)

// The document group predates the rest of the API and keeps its historical
// {success, data, message} envelope.

func docError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := "internal server error"

	var ve *service.ValidationError
	var de *service.DuplicateError
	switch {
	case errors.As(err, &ve):
		status, message = fiber.StatusBadRequest, ve.Error()
	case errors.As(err, &de):
		status, message = fiber.StatusBadRequest, de.Error()
	case errors.Is(err, service.ErrNotFound):
		status, message = fiber.StatusNotFound, "document or case not found"
	case errors.Is(err, service.ErrIDRequired):
		status, message = fiber.StatusBadRequest, "id is required"
	case errors.Is(err, service.ErrFileTooLarge):
		status, message = fiber.StatusBadRequest, "file exceeds the maximum upload size"
	case errors.Is(err, service.ErrBadReference):
		status, message = fiber.StatusBadRequest, "referenced case does not exist"
	case errors.Is(err, service.ErrReaderNil):
		status, message = fiber.StatusBadRequest, "file is required"
	}

	return c.Status(status).JSON(fiber.Map{"success": false, "message": message})
}

// UploadDocument accepts a multipart upload (field name: file) and attaches
// it to a case.
func UploadDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "file is required"})
		}

		f, err := fh.Open()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "cannot open uploaded file"})
		}
		defer f.Close()

		doc, err := svc.Upload(c.UserContext(), f, service.DocumentUpload{
			CaseID:           c.FormValue("case_id"),
			OriginalFilename: fh.Filename,
			DocumentName:     c.FormValue("document_name"),
			DocumentType:     c.FormValue("document_type"),
			ContentType:      fh.Header.Get("Content-Type"),
			Size:             fh.Size,
		})
		if err != nil {
			return docError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": doc})
	}
}

// ListDocuments returns all documents with joined case details.
func ListDocuments(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		docs, err := svc.List(c.UserContext())
		if err != nil {
			return docError(c, err)
		}
		return c.JSON(fiber.Map{"success": true, "results": len(docs), "data": docs})
	}
}

// GetDocument returns a single document by ID.
func GetDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		doc, err := svc.Get(c.UserContext(), c.Params("id"))
		if err != nil {
			return docError(c, err)
		}
		return c.JSON(fiber.Map{"success": true, "data": doc})
	}
}

// DownloadDocument streams the stored bytes as an attachment named after
// the document.
func DownloadDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rc, doc, err := svc.Open(c.UserContext(), c.Params("id"))
		if err != nil {
			return docError(c, err)
		}
		c.Set(fiber.HeaderContentType, doc.ContentType)
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, doc.DocumentName))
		return c.SendStream(rc, int(doc.FileSize))
	}
}

// ViewDocument streams the stored bytes inline.
func ViewDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rc, doc, err := svc.Open(c.UserContext(), c.Params("id"))
		if err != nil {
			return docError(c, err)
		}
		c.Set(fiber.HeaderContentType, doc.ContentType)
		c.Set(fiber.HeaderContentDisposition, "inline")
		return c.SendStream(rc, int(doc.FileSize))
	}
}

// UpdateDocument applies a partial metadata update; the stored bytes are
// never touched.
func UpdateDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.DocumentUpdate
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "cannot parse request body"})
		}
		doc, err := svc.Update(c.UserContext(), c.Params("id"), in)
		if err != nil {
			return docError(c, err)
		}
		return c.JSON(fiber.Map{"success": true, "data": doc})
	}
}

// DeleteDocument removes the stored object and then the record.
func DeleteDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Delete(c.UserContext(), c.Params("id")); err != nil {
			return docError(c, err)
		}
		return c.JSON(fiber.Map{"success": true, "message": "Document deleted successfully"})
	}
}
