package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/rajivgeraev/ads-service/internal/db"
	"github.com/rajivgeraev/ads-service/internal/models"
	"github.com/rajivgeraev/ads-service/internal/repositories"
)

const adColumns = `id, title, price::text, text, content_type, picture IS NOT NULL, owner_id, created_at, updated_at`

// AdRepository хранит объявления в таблице ads
type AdRepository struct {
	db DBTX
}

// NewAdRepository создает новый экземпляр AdRepository
func NewAdRepository(db DBTX) *AdRepository {
	return &AdRepository{db: db}
}

// List возвращает объявления в порядке добавления.
// Непустой search фильтрует по подстроке в заголовке или тексте без учета регистра.
func (r *AdRepository) List(ctx context.Context, search string) ([]models.Ad, error) {
	ctx, cancel := db.GetContext(ctx)
	defer cancel()

	var rows pgx.Rows
	var err error

	if search == "" {
		rows, err = r.db.Query(ctx, `SELECT `+adColumns+` FROM ads ORDER BY seq`)
	} else {
		rows, err = r.db.Query(ctx, `
			SELECT `+adColumns+`
			FROM ads
			WHERE title ILIKE $1 OR text ILIKE $1
			ORDER BY seq
		`, "%"+escapeLike(search)+"%")
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса объявлений: %w", err)
	}
	defer rows.Close()

	var ads []models.Ad
	for rows.Next() {
		ad, err := scanAd(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования объявления: %w", err)
		}
		ads = append(ads, *ad)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка чтения объявлений: %w", err)
	}

	return ads, nil
}

// Get возвращает объявление по ID без содержимого картинки
func (r *AdRepository) Get(ctx context.Context, id uuid.UUID) (*models.Ad, error) {
	ctx, cancel := db.GetContext(ctx)
	defer cancel()

	row := r.db.QueryRow(ctx, `SELECT `+adColumns+` FROM ads WHERE id = $1`, id)
	return scanAdRow(row)
}

// FindByIDAndOwner возвращает объявление, только если оно принадлежит ownerID
func (r *AdRepository) FindByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (*models.Ad, error) {
	ctx, cancel := db.GetContext(ctx)
	defer cancel()

	row := r.db.QueryRow(ctx, `SELECT `+adColumns+` FROM ads WHERE id = $1 AND owner_id = $2`, id, ownerID)
	return scanAdRow(row)
}

// GetPicture возвращает содержимое картинки и ее MIME-тип
func (r *AdRepository) GetPicture(ctx context.Context, id uuid.UUID) ([]byte, string, error) {
	ctx, cancel := db.GetContext(ctx)
	defer cancel()

	var picture []byte
	var contentType pgtype.Text

	err := r.db.QueryRow(ctx, `SELECT picture, content_type FROM ads WHERE id = $1`, id).Scan(&picture, &contentType)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", repositories.ErrNotFound
		}
		return nil, "", fmt.Errorf("ошибка получения картинки: %w", err)
	}

	return picture, contentType.String, nil
}

// Create сохраняет новое объявление и заполняет ID и временные метки
func (r *AdRepository) Create(ctx context.Context, ad *models.Ad) error {
	ctx, cancel := db.GetContext(ctx)
	defer cancel()

	ad.ID = uuid.New()

	err := r.db.QueryRow(ctx, `
		INSERT INTO ads (id, title, price, text, picture, content_type, owner_id)
		VALUES ($1, $2, $3::text::numeric, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`, ad.ID, ad.Title, ad.Price, ad.Text, ad.Picture, nullableString(ad.ContentType), ad.OwnerID).
		Scan(&ad.CreatedAt, &ad.UpdatedAt)
	if err != nil {
		return fmt.Errorf("ошибка сохранения объявления: %w", err)
	}

	ad.HasPicture = len(ad.Picture) > 0
	return nil
}

// Update сохраняет изменения объявления владельца.
// Картинка перезаписывается только при replacePicture.
func (r *AdRepository) Update(ctx context.Context, ad *models.Ad, replacePicture bool) error {
	ctx, cancel := db.GetContext(ctx)
	defer cancel()

	var row pgx.Row
	if replacePicture {
		row = r.db.QueryRow(ctx, `
			UPDATE ads
			SET title = $1, price = $2::text::numeric, text = $3, picture = $4, content_type = $5, updated_at = NOW()
			WHERE id = $6 AND owner_id = $7
			RETURNING updated_at
		`, ad.Title, ad.Price, ad.Text, ad.Picture, nullableString(ad.ContentType), ad.ID, ad.OwnerID)
	} else {
		row = r.db.QueryRow(ctx, `
			UPDATE ads
			SET title = $1, price = $2::text::numeric, text = $3, updated_at = NOW()
			WHERE id = $4 AND owner_id = $5
			RETURNING updated_at
		`, ad.Title, ad.Price, ad.Text, ad.ID, ad.OwnerID)
	}

	if err := row.Scan(&ad.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repositories.ErrNotFound
		}
		return fmt.Errorf("ошибка обновления объявления: %w", err)
	}

	if replacePicture {
		ad.HasPicture = len(ad.Picture) > 0
	}
	return nil
}

// DeleteOwned удаляет объявление владельца; комментарии и избранное удаляются каскадно
func (r *AdRepository) DeleteOwned(ctx context.Context, id, ownerID uuid.UUID) error {
	ctx, cancel := db.GetContext(ctx)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM ads WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("ошибка удаления объявления: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func scanAdRow(row pgx.Row) (*models.Ad, error) {
	ad, err := scanAd(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения объявления: %w", err)
	}
	return ad, nil
}

func scanAd(row pgx.Row) (*models.Ad, error) {
	var ad models.Ad
	var price, contentType pgtype.Text

	if err := row.Scan(
		&ad.ID,
		&ad.Title,
		&price,
		&ad.Text,
		&contentType,
		&ad.HasPicture,
		&ad.OwnerID,
		&ad.CreatedAt,
		&ad.UpdatedAt,
	); err != nil {
		return nil, err
	}

	// Преобразуем nullable поля
	if price.Valid {
		ad.Price = &price.String
	}
	if contentType.Valid {
		ad.ContentType = contentType.String
	}

	return &ad, nil
}
