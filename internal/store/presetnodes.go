package store

import (
	"context"

	"github.com/alexanderramin/ejournal/internal/cache"
	"github.com/alexanderramin/ejournal/internal/domain"
)

type PresetNodes struct {
	s           *Store
	listCache   *cache.Store[int, []domain.PresetNode]
	deleteCache *cache.Store[int, string]
}

func newPresetNodes(s *Store) *PresetNodes {
	return &PresetNodes{
		s:           s,
		listCache:   cache.New[int, []domain.PresetNode]("preset_node.list"),
		deleteCache: cache.New[int, string]("preset_node.delete"),
	}
}

func (p *PresetNodes) List(ctx context.Context, aID int, force bool) ([]domain.PresetNode, error) {
	_, err := p.listCache.Get(ctx, aID, force, func(ctx context.Context) ([]domain.PresetNode, error) {
		nodes, err := p.s.api.PresetNodes.List(ctx, aID)
		if err != nil {
			return nil, err
		}
		p.s.mu.Lock()
		p.s.presetNodes.set(aID, nodes)
		p.s.mu.Unlock()
		return nodes, nil
	})
	if err != nil {
		return nil, err
	}
	return p.Collection(aID), nil
}

func (p *PresetNodes) Create(ctx context.Context, aID int, node domain.PresetNode) (domain.PresetNode, error) {
	created, err := p.s.api.PresetNodes.Create(ctx, aID, node)
	if err != nil {
		return domain.PresetNode{}, err
	}

	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	if !p.s.presetNodes.add(aID, created) {
		p.s.skipped(domain.KindPresetNode, aID)
	}
	return created.Clone(), nil
}

// Update saves the node. oldID is the id the node is stored under, which
// differs from node.ID only for drafts.
func (p *PresetNodes) Update(ctx context.Context, aID, oldID int, node domain.PresetNode) (domain.PresetNode, error) {
	node.ID = oldID
	updated, err := p.s.api.PresetNodes.Update(ctx, aID, node)
	if err != nil {
		return domain.PresetNode{}, err
	}

	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	if !p.s.presetNodes.replace(aID, oldID, updated) {
		p.s.skipped(domain.KindPresetNode, aID)
	}
	return updated.Clone(), nil
}

func (p *PresetNodes) Delete(ctx context.Context, aID, id int, force bool) (string, error) {
	return p.deleteCache.Get(ctx, id, force, func(ctx context.Context) (string, error) {
		desc, err := p.s.api.PresetNodes.Delete(ctx, id)
		if err != nil {
			return "", err
		}

		p.s.mu.Lock()
		defer p.s.mu.Unlock()
		if !p.s.presetNodes.remove(aID, id) {
			p.s.skipped(domain.KindPresetNode, aID)
		}
		return desc, nil
	})
}

func (p *PresetNodes) Collection(aID int) []domain.PresetNode {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	return p.s.presetNodes.snapshot(aID)
}

func (p *PresetNodes) Find(aID, id int) (domain.PresetNode, bool) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	return p.s.presetNodes.find(aID, id)
}
