// docs — сервис документов на Google Drive/Docs.
//
// Создание RFD идёт от сервисного аккаунта: копия шаблона в папку RFD,
// подстановка плейсхолдеров, выдача прав и получение ссылки.
// Список шаблонов читается сервисным аккаунтом, а без него — токеном пользователя.
package docs

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pribylovaa/rfd-tracker/internal/models"
	logctx "github.com/pribylovaa/rfd-tracker/internal/pkg/log"
	"github.com/pribylovaa/rfd-tracker/internal/pkg/redact"
	"golang.org/x/oauth2"
	gdocs "google.golang.org/api/docs/v1"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

const (
	templateQuery  = "name contains 'RFD Template' and mimeType='application/vnd.google-apps.document'"
	templateFields = "files(id,name,createdTime,modifiedTime)"
	dateLayout     = "January 2, 2006"
)

// ErrNotConfigured — нет ни сервисного аккаунта, ни токена пользователя.
var ErrNotConfigured = errors.New("document service not configured")

// Config — параметры клиента.
type Config struct {
	// ServiceAccountKey — JSON ключа сервисного аккаунта; пустой отключает создание RFD.
	ServiceAccountKey string
	FolderID          string
	TeamEmails        []string
}

// Client — клиент Drive/Docs.
type Client struct {
	cfg   Config
	drive *drive.Service
	docs  *gdocs.Service

	driveEndpoint string
	docsEndpoint  string
	httpClient    *http.Client
	timeout       time.Duration
	now           func() time.Time
}

// Option — функциональная опция Client.
type Option func(*Client)

// WithEndpoints подменяет базовые адреса Drive и Docs API (тесты).
func WithEndpoints(driveURL, docsURL string) Option {
	return func(c *Client) {
		c.driveEndpoint = driveURL
		c.docsEndpoint = docsURL
	}
}

// WithHTTPClient задаёт HTTP-клиент без авторизации (тесты, прокси с собственной авторизацией).
// Ключ сервисного аккаунта при этом только включает создание документов.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

// WithTimeout ограничивает одну операцию с Drive/Docs целиком.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithClock подменяет часы для {{DATE}}.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// New создаёт клиента. Без ключа сервисного аккаунта клиент умеет только
// читать шаблоны токеном пользователя.
func New(ctx context.Context, cfg Config, opts ...Option) (*Client, error) {
	const op = "docs.New"

	c := &Client{cfg: cfg, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}

	if cfg.ServiceAccountKey == "" {
		return c, nil
	}

	auth := option.WithCredentialsJSON([]byte(cfg.ServiceAccountKey))
	if c.httpClient != nil {
		auth = option.WithHTTPClient(c.httpClient)
	}

	var err error
	c.drive, err = drive.NewService(ctx, c.clientOptions(auth, c.driveEndpoint, drive.DriveScope)...)
	if err != nil {
		return nil, fmt.Errorf("%s: drive: %w", op, err)
	}

	c.docs, err = gdocs.NewService(ctx, c.clientOptions(auth, c.docsEndpoint, gdocs.DocumentsScope)...)
	if err != nil {
		return nil, fmt.Errorf("%s: docs: %w", op, err)
	}

	return c, nil
}

func (c *Client) clientOptions(auth option.ClientOption, endpoint, scope string) []option.ClientOption {
	opts := []option.ClientOption{auth, option.WithScopes(scope)}
	if endpoint != "" {
		opts = append(opts, option.WithEndpoint(endpoint))
	}

	return opts
}

// HasServiceAccount — доступно ли создание документов.
func (c *Client) HasServiceAccount() bool {
	return c.drive != nil && c.docs != nil
}

// CreateFromTemplate копирует шаблон и готовит документ RFD.
// Если шаги после копирования падают, копия удаляется (best effort).
func (c *Client) CreateFromTemplate(ctx context.Context, templateID string, data models.TemplateData) (models.DocRef, error) {
	const op = "docs.CreateFromTemplate"

	if !c.HasServiceAccount() {
		return models.DocRef{}, fmt.Errorf("%s: %w", op, ErrNotConfigured)
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	file := &drive.File{Name: "RFD: " + data.Title}
	if c.cfg.FolderID != "" {
		file.Parents = []string{c.cfg.FolderID}
	}

	copied, err := c.drive.Files.Copy(templateID, file).
		SupportsAllDrives(true).
		Fields("id").
		Context(ctx).
		Do()
	if err != nil {
		return models.DocRef{}, fmt.Errorf("%s: copy: %w", op, err)
	}

	ref, err := c.prepare(ctx, copied.Id, data)
	if err != nil {
		if delErr := c.drive.Files.Delete(copied.Id).SupportsAllDrives(true).Context(ctx).Do(); delErr != nil {
			logctx.From(ctx).Error("docs_cleanup_failed", "doc_id", copied.Id, "err", delErr)
		}

		return models.DocRef{}, fmt.Errorf("%s: %w", op, err)
	}

	return ref, nil
}

func (c *Client) prepare(ctx context.Context, docID string, data models.TemplateData) (models.DocRef, error) {
	_, err := c.docs.Documents.BatchUpdate(docID, &gdocs.BatchUpdateDocumentRequest{
		Requests: replaceRequests(data, c.now()),
	}).Context(ctx).Do()
	if err != nil {
		return models.DocRef{}, fmt.Errorf("replace placeholders: %w", err)
	}

	if err := c.grant(ctx, docID, data.CreatorEmail); err != nil {
		return models.DocRef{}, err
	}

	f, err := c.drive.Files.Get(docID).
		SupportsAllDrives(true).
		Fields("id,webViewLink").
		Context(ctx).
		Do()
	if err != nil {
		return models.DocRef{}, fmt.Errorf("get link: %w", err)
	}

	return models.DocRef{ID: docID, URL: f.WebViewLink}, nil
}

// grant: автор и команда — writer, все по ссылке — commenter.
// Ошибка по отдельному члену команды только логируется.
func (c *Client) grant(ctx context.Context, docID, creator string) error {
	perm := func(p *drive.Permission) error {
		_, err := c.drive.Permissions.Create(docID, p).
			SupportsAllDrives(true).
			Context(ctx).
			Do()
		return err
	}

	if creator != "" {
		if err := perm(&drive.Permission{Role: "writer", Type: "user", EmailAddress: creator}); err != nil {
			return fmt.Errorf("grant creator: %w", err)
		}
	}

	if err := perm(&drive.Permission{Role: "commenter", Type: "anyone"}); err != nil {
		return fmt.Errorf("grant anyone: %w", err)
	}

	for _, raw := range c.cfg.TeamEmails {
		email := strings.TrimSpace(raw)
		if email == "" || strings.EqualFold(email, creator) {
			continue
		}

		if err := perm(&drive.Permission{Role: "writer", Type: "user", EmailAddress: email}); err != nil {
			logctx.From(ctx).Warn("docs_team_permission_failed",
				"doc_id", docID,
				"email", redact.Email(email),
				"err", err,
			)
		}
	}

	return nil
}

func replaceRequests(data models.TemplateData, now time.Time) []*gdocs.Request {
	pairs := [][2]string{
		{"{{TITLE}}", data.Title},
		{"{{AUTHOR}}", data.Author},
		{"{{DESCRIPTION}}", data.Description},
		{"{{DATE}}", now.Format(dateLayout)},
		{"{{TAGS}}", strings.Join(data.Tags, ", ")},
	}

	out := make([]*gdocs.Request, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, &gdocs.Request{
			ReplaceAllText: &gdocs.ReplaceAllTextRequest{
				ContainsText: &gdocs.SubstringMatchCriteria{Text: p[0], MatchCase: true},
				ReplaceText:  p[1],
				// пустая подстановка должна уйти в JSON, иначе плейсхолдер останется
				ForceSendFields: []string{"ReplaceText"},
			},
		})
	}

	return out
}

// ListTemplates возвращает шаблоны RFD. При наличии сервисного аккаунта
// userAccessToken не используется.
func (c *Client) ListTemplates(ctx context.Context, userAccessToken string) ([]models.Template, error) {
	const op = "docs.ListTemplates"

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	svc := c.drive
	if svc == nil {
		if userAccessToken == "" {
			return nil, fmt.Errorf("%s: %w", op, ErrNotConfigured)
		}

		var err error
		svc, err = c.userDrive(ctx, userAccessToken)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	resp, err := svc.Files.List().
		Q(templateQuery).
		Fields(templateFields).
		SupportsAllDrives(true).
		IncludeItemsFromAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]models.Template, 0, len(resp.Files))
	for _, f := range resp.Files {
		out = append(out, models.Template{
			ID:         f.Id,
			Name:       f.Name,
			CreatedAt:  parseTime(f.CreatedTime),
			ModifiedAt: parseTime(f.ModifiedTime),
		})
	}

	return out, nil
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, c.timeout)
}

func (c *Client) userDrive(ctx context.Context, accessToken string) (*drive.Service, error) {
	auth := option.WithTokenSource(oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken}))
	if c.httpClient != nil {
		auth = option.WithHTTPClient(c.httpClient)
	}

	return drive.NewService(ctx, c.clientOptions(auth, c.driveEndpoint, drive.DriveReadonlyScope)...)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}

	return t
}
