package catalog

import (
	"github.com/badaskaptan/kargomarket-sub002/internal/pkg/catalog"
	"github.com/badaskaptan/kargomarket-sub002/internal/pkg/constants"
	"github.com/badaskaptan/kargomarket-sub002/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct{}

// GET /api/v1/catalog/options/:mode — the vehicle groups and document
// checklist for a transport mode. Multimodal has no constraints and returns
// empty groups.
func (h *Handlers) GetOptions(c *fiber.Ctx) error {
	mode := c.Params("mode")
	if !constants.IsValidTransportMode(mode) {
		return response.Error(c, "Unknown transport mode", 400, nil)
	}
	return response.Success(c, "Options fetched successfully", fiber.Map{
		"transport_mode":  mode,
		"vehicle_groups":  catalog.VehicleGroups(mode),
		"document_groups": catalog.DocumentGroups(mode),
	}, nil)
}
