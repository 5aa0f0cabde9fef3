package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/rocketscienceinc/puzzlebox/internal/apperror"
)

const (
	MediaTypeTOML = "application/toml"
	MediaTypeYAML = "application/yaml"
	MediaTypeJSON = "application/json"
)

type Order struct {
	Item     string
	Quantity int64
}

func (that Order) String() string {
	return that.Item + ": " + strconv.FormatInt(that.Quantity, 10)
}

// ManifestService extracts gift orders from a package manifest.
type ManifestService interface {
	// Orders returns ErrUnsupportedFormat for an unknown media type, ErrInvalidInput for a
	// broken manifest and ErrNothingToReport when no valid order is present.
	Orders(contentType string, body []byte) ([]Order, error)
}

type manifestService struct {
	logger zerolog.Logger
}

func NewManifestService(logger zerolog.Logger) ManifestService {
	return &manifestService{
		logger: logger.With().Str("component", "manifest").Logger(),
	}
}

func (that *manifestService) Orders(contentType string, body []byte) ([]Order, error) {
	log := that.logger.With().Str("method", "Orders").Logger()

	manifest, err := decodeManifest(contentType, body)
	if err != nil {
		return nil, err
	}

	rawPackage, ok := manifest["package"]
	if !ok {
		return nil, fmt.Errorf("%w: no package section", apperror.ErrNothingToReport)
	}

	pkg, ok := asTable(rawPackage)
	if !ok {
		return nil, fmt.Errorf("%w: package is not a table", apperror.ErrInvalidInput)
	}

	if name, ok := pkg["name"].(string); !ok || name == "" {
		return nil, fmt.Errorf("%w: package name is missing", apperror.ErrInvalidInput)
	}

	metadata, ok := asTable(pkg["metadata"])
	if !ok {
		return nil, fmt.Errorf("%w: no package.metadata section", apperror.ErrNothingToReport)
	}

	rawOrders, ok := asList(metadata["orders"])
	if !ok {
		return nil, fmt.Errorf("%w: no package.metadata.orders", apperror.ErrNothingToReport)
	}

	orders := make([]Order, 0, len(rawOrders))
	for i, rawOrder := range rawOrders {
		entry, ok := asTable(rawOrder)
		if !ok {
			log.Warn().Int("order", i).Msg("order is not a table")
			continue
		}

		item, ok := entry["item"].(string)
		if !ok {
			log.Warn().Int("order", i).Msg("invalid order item")
			continue
		}

		quantity, ok := asInteger(entry["quantity"])
		if !ok {
			log.Warn().Int("order", i).Msg("invalid order quantity")
			continue
		}

		orders = append(orders, Order{Item: item, Quantity: quantity})
	}

	if len(orders) == 0 {
		return nil, fmt.Errorf("%w: no valid orders", apperror.ErrNothingToReport)
	}

	return orders, nil
}

func decodeManifest(contentType string, body []byte) (map[string]any, error) {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: content type %q", apperror.ErrUnsupportedFormat, contentType)
	}

	manifest := map[string]any{}

	switch strings.ToLower(mediaType) {
	case MediaTypeTOML:
		err = toml.Unmarshal(body, &manifest)
	case MediaTypeYAML, "application/x-yaml", "text/yaml":
		err = yaml.Unmarshal(body, &manifest)
	case MediaTypeJSON:
		decoder := json.NewDecoder(bytes.NewReader(body))
		decoder.UseNumber()
		err = decoder.Decode(&manifest)
	default:
		return nil, fmt.Errorf("%w: content type %q", apperror.ErrUnsupportedFormat, mediaType)
	}

	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperror.ErrInvalidInput, err)
	}

	return manifest, nil
}

func asTable(value any) (map[string]any, bool) {
	table, ok := value.(map[string]any)
	return table, ok
}

func asList(value any) ([]any, bool) {
	switch list := value.(type) {
	case []any:
		return list, true
	case []map[string]any:
		items := make([]any, len(list))
		for i, item := range list {
			items[i] = item
		}
		return items, true
	default:
		return nil, false
	}
}

func asInteger(value any) (int64, bool) {
	switch number := value.(type) {
	case int64:
		return number, true
	case int:
		return int64(number), true
	case uint64:
		if number > 1<<63-1 {
			return 0, false
		}
		return int64(number), true
	case json.Number:
		n, err := number.Int64()
		return n, err == nil
	default:
		return 0, false
	}
}
