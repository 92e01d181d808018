package dnd5e

import (
	"log"
	"net/http"

	"github.com/fadedpez/dnd5e-api/clients/dnd5e"
	apiEntities "github.com/fadedpez/dnd5e-api/entities"

	dnderr "github.com/KirkDiggler/dnd-dpr/internal/errors"
)

const weaponCategory = "weapon"

type client struct {
	client dnd5e.Interface
}

type Config struct {
	HttpClient *http.Client
}

// New creates a client for the public D&D 5e SRD API
func New(cfg *Config) (Client, error) {
	if cfg == nil {
		return nil, dnderr.InvalidParameterf("dnd5e client config is required")
	}

	dndClient, err := dnd5e.NewDND5eAPI(&dnd5e.DND5eAPIConfig{
		Client: cfg.HttpClient,
	})
	if err != nil {
		return nil, err
	}

	return &client{
		client: dndClient,
	}, nil
}

func (c *client) GetWeapon(key string) (*Weapon, error) {
	if key == "" {
		return nil, dnderr.InvalidParameterf("weapon key is required")
	}

	response, err := c.client.GetEquipment(key)
	if err != nil {
		return nil, dnderr.Wrapf(err, "failed to get equipment %s", key)
	}

	weapon, ok := response.(*apiEntities.Weapon)
	if !ok {
		return nil, dnderr.NotFoundf("%s is not a weapon", key).WithMeta("key", key)
	}
	return apiWeaponToWeapon(weapon)
}

func (c *client) ListWeapons() ([]*Weapon, error) {
	category, err := c.client.GetEquipmentCategory(weaponCategory)
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to get weapon category")
	}

	weapons := make([]*Weapon, 0, len(category.Equipment))
	for _, ref := range category.Equipment {
		if ref.Key == "" {
			continue
		}
		weapon, err := c.GetWeapon(ref.Key)
		if err != nil {
			log.Printf("Skipping weapon %s: %v", ref.Key, err)
			continue
		}
		weapons = append(weapons, weapon)
	}
	return weapons, nil
}
