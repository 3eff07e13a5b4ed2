// Package controller implements the catalog form's event handlers: validate the
// entry fields, run one data-access operation, re-fetch the active list and
// replace the displayed collection.
package controller

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ajitpratap0/pokedex/internal/metrics"
	"github.com/ajitpratap0/pokedex/internal/models"
	"github.com/ajitpratap0/pokedex/internal/store"
)

// ErrNoSelection is returned by Modify and Release when no record is selected.
var ErrNoSelection = errors.New("no pokemon selected")

// Controller owns the displayed record set and the current selection.
type Controller struct {
	store    store.Store
	view     View
	logger   zerolog.Logger
	records  []models.Pokemon
	selected int
}

// New creates a Controller. Call Refresh to populate the view.
func New(st store.Store, view View, logger zerolog.Logger) *Controller {
	return &Controller{
		store:    st,
		view:     view,
		logger:   logger.With().Str("component", "controller").Logger(),
		selected: -1,
	}
}

// Records returns a copy of the displayed collection.
func (c *Controller) Records() []models.Pokemon {
	out := make([]models.Pokemon, len(c.records))
	copy(out, c.records)
	return out
}

// Selected returns the selected record, if any.
func (c *Controller) Selected() (models.Pokemon, bool) {
	if c.selected < 0 || c.selected >= len(c.records) {
		return models.Pokemon{}, false
	}
	return c.records[c.selected], true
}

// Select marks the displayed record at index as selected and loads it into the fields.
func (c *Controller) Select(index int) bool {
	if index < 0 || index >= len(c.records) {
		return false
	}
	c.selected = index
	c.view.SetForm(models.FormFromPokemon(c.records[index]))
	c.view.SetSelected(index)
	return true
}

// SelectID selects the displayed record with the given identifier.
func (c *Controller) SelectID(id int) bool {
	for i := range c.records {
		if c.records[i].ID == id {
			return c.Select(i)
		}
	}
	return false
}

// Clear empties the entry fields and drops the selection.
func (c *Controller) Clear() {
	c.selected = -1
	c.view.SetForm(models.Form{})
	c.view.SetSelected(-1)
}

// Refresh re-fetches the active records and replaces the displayed collection.
// On failure the user is told and an empty collection is displayed.
func (c *Controller) Refresh(ctx context.Context) error {
	log := c.opLogger("refresh")
	metrics.Inc(metrics.RefreshTotal)

	records, err := c.store.ListActive(ctx)
	if err != nil {
		metrics.Inc(metrics.StoreErrorTotal)
		log.Error().Err(err).Msg("listing active pokemon")
		c.view.Notify(Notice{
			Severity: SeverityError,
			Title:    "Connection error",
			Message:  fmt.Sprintf("Could not load the Pokémon: %v", err),
		})
		records = nil
	}

	c.display(records)
	log.Debug().Int("records", len(c.records)).Msg("view refreshed")
	return err
}

// display replaces the collection. A selection survives only if its id is still shown.
func (c *Controller) display(records []models.Pokemon) {
	prev, had := c.Selected()
	c.records = make([]models.Pokemon, len(records))
	copy(c.records, records)

	c.selected = -1
	if had {
		for i := range c.records {
			if c.records[i].ID == prev.ID {
				c.selected = i
				break
			}
		}
	}

	c.view.ShowRecords(c.Records())
	c.view.SetSelected(c.selected)
}

// Register inserts the record typed in the fields. Invalid input is rejected
// before the store is touched; otherwise the list is re-fetched and the fields
// cleared whatever the outcome.
func (c *Controller) Register(ctx context.Context) error {
	log := c.opLogger("register")

	p, err := c.view.Form().Pokemon()
	if err != nil {
		metrics.Inc(metrics.RejectedTotal)
		log.Warn().Err(err).Msg("rejected input")
		c.view.Notify(Notice{
			Severity: SeverityWarning,
			Title:    "Invalid data",
			Message:  "Please fill in every field and make sure ID, Height and Weight are valid numbers" + invalidSuffix(err),
		})
		return err
	}

	metrics.Inc(metrics.RegisterTotal)
	err = c.store.Insert(ctx, p)
	switch {
	case err == nil:
		log.Info().Int("id", p.ID).Str("name", p.Name).Msg("registered pokemon")
		c.view.Notify(Notice{
			Severity: SeverityInfo,
			Title:    "Registered",
			Message:  fmt.Sprintf("%s has been registered!", p.Name),
		})
	case errors.Is(err, store.ErrDuplicateID):
		metrics.Inc(metrics.DuplicateTotal)
		log.Warn().Int("id", p.ID).Msg("duplicate id")
		c.view.Notify(Notice{
			Severity: SeverityError,
			Title:    "Duplicate ID",
			Message:  fmt.Sprintf("ID %d already exists. A Pokémon with a duplicate ID cannot be registered.", p.ID),
		})
	default:
		metrics.Inc(metrics.StoreErrorTotal)
		log.Error().Err(err).Int("id", p.ID).Msg("inserting pokemon")
		c.view.Notify(Notice{
			Severity: SeverityError,
			Title:    "Database error",
			Message:  fmt.Sprintf("Could not register the Pokémon: %v", err),
		})
	}

	_ = c.Refresh(ctx)
	c.Clear()
	return err
}

// Modify writes the fields over the record with the typed identifier.
// The list is re-fetched afterwards; the fields are kept.
func (c *Controller) Modify(ctx context.Context) error {
	log := c.opLogger("modify")

	if _, ok := c.Selected(); !ok {
		log.Warn().Msg("nothing selected")
		c.view.Notify(Notice{
			Severity: SeverityWarning,
			Title:    "No Pokémon selected",
			Message:  "Please select a Pokémon from the list to modify.",
		})
		return ErrNoSelection
	}

	p, err := c.view.Form().Pokemon()
	if err != nil {
		metrics.Inc(metrics.RejectedTotal)
		log.Warn().Err(err).Msg("rejected input")
		c.view.Notify(Notice{
			Severity: SeverityWarning,
			Title:    "Invalid data",
			Message:  "Please make sure the name is filled in and that ID, Height and Weight are valid numbers" + invalidSuffix(err),
		})
		return err
	}

	metrics.Inc(metrics.ModifyTotal)
	err = c.store.Update(ctx, p)
	switch {
	case err == nil:
		log.Info().Int("id", p.ID).Msg("modified pokemon")
		c.view.Notify(Notice{
			Severity: SeverityInfo,
			Title:    "Updated",
			Message:  "Pokémon data updated!",
		})
	case errors.Is(err, store.ErrNotFound):
		log.Warn().Int("id", p.ID).Msg("no row matched")
		c.view.Notify(Notice{
			Severity: SeverityWarning,
			Title:    "Not found",
			Message:  fmt.Sprintf("No Pokémon with ID %d was found to modify.", p.ID),
		})
	default:
		metrics.Inc(metrics.StoreErrorTotal)
		log.Error().Err(err).Int("id", p.ID).Msg("updating pokemon")
		c.view.Notify(Notice{
			Severity: SeverityError,
			Title:    "Database error",
			Message:  fmt.Sprintf("Could not modify the Pokémon: %v", err),
		})
	}

	_ = c.Refresh(ctx)
	return err
}

// Release soft-deletes the record with the typed identifier once the user
// confirms. Declining is a no-op. done, when non-nil, receives the outcome;
// it runs synchronously unless the view confirms asynchronously.
func (c *Controller) Release(ctx context.Context, done func(released bool, err error)) {
	log := c.opLogger("release")
	finish := func(released bool, err error) {
		if done != nil {
			done(released, err)
		}
	}

	if _, ok := c.Selected(); !ok {
		log.Warn().Msg("nothing selected")
		c.view.Notify(Notice{
			Severity: SeverityWarning,
			Title:    "No Pokémon selected",
			Message:  "Please select a Pokémon from the list to release.",
		})
		finish(false, ErrNoSelection)
		return
	}

	form := c.view.Form()
	id, err := form.ParseID()
	if err != nil {
		metrics.Inc(metrics.RejectedTotal)
		log.Warn().Err(err).Msg("rejected input")
		c.view.Notify(Notice{
			Severity: SeverityError,
			Title:    "Error",
			Message:  "The Pokémon ID is not valid.",
		})
		finish(false, err)
		return
	}

	name := strings.TrimSpace(form.Name)
	if name == "" {
		name = "#" + strconv.Itoa(id)
	}

	c.view.Confirm("Confirm release", fmt.Sprintf("Are you sure you want to release %s?", name), func(confirmed bool) {
		if !confirmed {
			log.Debug().Int("id", id).Msg("release cancelled")
			finish(false, nil)
			return
		}

		metrics.Inc(metrics.ReleaseTotal)
		err := c.store.Release(ctx, id)
		switch {
		case err == nil:
			log.Info().Int("id", id).Msg("released pokemon")
			c.view.Notify(Notice{
				Severity: SeverityInfo,
				Title:    "Released",
				Message:  fmt.Sprintf("%s has been released.", name),
			})
		case errors.Is(err, store.ErrNotFound):
			log.Warn().Int("id", id).Msg("no active row matched")
			c.view.Notify(Notice{
				Severity: SeverityWarning,
				Title:    "Not found",
				Message:  fmt.Sprintf("No active Pokémon with ID %d was found to release.", id),
			})
		default:
			metrics.Inc(metrics.StoreErrorTotal)
			log.Error().Err(err).Int("id", id).Msg("releasing pokemon")
			c.view.Notify(Notice{
				Severity: SeverityError,
				Title:    "Database error",
				Message:  fmt.Sprintf("Could not release the Pokémon: %v", err),
			})
		}

		_ = c.Refresh(ctx)
		c.Clear()
		finish(err == nil, err)
	})
}

// Search displays the active records matching query. A blank query falls back
// to a full refresh. A single hit is selected and loaded into the fields;
// otherwise the fields are cleared.
func (c *Controller) Search(ctx context.Context, query string) ([]models.Pokemon, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		err := c.Refresh(ctx)
		c.Clear()
		return c.Records(), err
	}

	log := c.opLogger("search")
	metrics.Inc(metrics.SearchTotal)

	results, err := c.store.Search(ctx, query)
	if err != nil {
		metrics.Inc(metrics.StoreErrorTotal)
		log.Error().Err(err).Str("query", query).Msg("searching pokemon")
		c.view.Notify(Notice{
			Severity: SeverityError,
			Title:    "Database error",
			Message:  fmt.Sprintf("Search failed: %v", err),
		})
		results = nil
	}

	c.display(results)
	if len(c.records) == 1 {
		c.Select(0)
	} else {
		c.Clear()
	}

	log.Debug().Str("query", query).Int("results", len(c.records)).Msg("search done")
	return c.Records(), err
}

func (c *Controller) opLogger(op string) zerolog.Logger {
	return c.logger.With().Str("op", op).Str("op_id", uuid.NewString()).Logger()
}

// invalidSuffix names the rejected fields, if err lists them.
func invalidSuffix(err error) string {
	var ve *models.ValidationError
	if errors.As(err, &ve) && len(ve.Fields) > 0 {
		return " (invalid: " + strings.Join(ve.Fields, ", ") + ")."
	}
	return "."
}
