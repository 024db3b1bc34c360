package controller

import (
	"bytes"
	"errors"
	"io"
	"net/url"

	"smart-pdf-assistant/internal/dto"
	"smart-pdf-assistant/internal/pkg/serverutils"
	"smart-pdf-assistant/internal/service"
	"smart-pdf-assistant/internal/view"

	"github.com/gofiber/fiber/v2"
)

const maxUploadBytes = 10 * 1024 * 1024

type IAssistantController interface {
	RegisterRoutes(r fiber.Router)
	Index(ctx *fiber.Ctx) error
	Session(ctx *fiber.Ctx) error
	Upload(ctx *fiber.Ctx) error
	Chat(ctx *fiber.Ctx) error
	Document(ctx *fiber.Ctx) error
}

type assistantController struct {
	uploadService service.IUploadService
	chatService   service.IChatService
	viewerService service.IViewerService
	page          *view.Page
}

func NewAssistantController(
	uploadService service.IUploadService,
	chatService service.IChatService,
	viewerService service.IViewerService,
	page *view.Page,
) IAssistantController {
	return &assistantController{
		uploadService: uploadService,
		chatService:   chatService,
		viewerService: viewerService,
		page:          page,
	}
}

func (c *assistantController) RegisterRoutes(r fiber.Router) {
	r.Get("/", c.Index)
	r.Get("/pdf/:filename", c.Document)

	api := r.Group("/api")
	api.Get("session", c.Session)
	api.Post("upload", c.Upload)
	api.Post("chat", c.Chat)
}

func (c *assistantController) Index(ctx *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := c.page.Render(&buf, dto.NewSessionResponse(c.chatService.Session())); err != nil {
		return err
	}
	ctx.Type("html", "utf-8")
	return ctx.Send(buf.Bytes())
}

func (c *assistantController) Session(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success get session", dto.NewSessionResponse(c.chatService.Session())))
}

func (c *assistantController) Upload(ctx *fiber.Ctx) error {
	// 1. Read the selected file, if any
	var file *dto.SelectedFile
	if header, err := ctx.FormFile("pdf"); err == nil {
		if header.Size > maxUploadBytes {
			return fiber.NewError(fiber.StatusRequestEntityTooLarge, "PDF exceeds 10MB")
		}
		f, err := header.Open()
		if err != nil {
			return err
		}
		defer f.Close()

		data, err := io.ReadAll(f)
		if err != nil {
			return err
		}
		file = &dto.SelectedFile{Name: header.Filename, Data: data}
	}

	// 2. Submit
	res, err := c.uploadService.SubmitUpload(ctx.UserContext(), file)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success submit upload", dto.NewSessionResponse(res)))
}

func (c *assistantController) Chat(ctx *fiber.Ctx) error {
	var req dto.SendChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid chat request")
	}

	res, err := c.chatService.SubmitQuery(ctx.UserContext(), req.Query)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success submit query", dto.NewSessionResponse(res)))
}

func (c *assistantController) Document(ctx *fiber.Ctx) error {
	filename, err := url.PathUnescape(ctx.Params("filename"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid filename")
	}

	data, err := c.viewerService.Document(ctx.UserContext(), filename)
	if err != nil {
		if errors.Is(err, service.ErrDocumentNotLoaded) {
			return fiber.NewError(fiber.StatusNotFound, "PDF not found")
		}
		return fiber.NewError(fiber.StatusBadGateway, "Failed to load PDF")
	}

	ctx.Set(fiber.HeaderContentType, "application/pdf")
	ctx.Set(fiber.HeaderContentDisposition, "inline")
	return ctx.Send(data)
}
