package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/neonflick/goapi/base/ctx"
	"github.com/neonflick/goapi/base/database/mongoclient"
	"github.com/neonflick/goapi/domain"
	"github.com/neonflick/goapi/domain/blocklist"
	"github.com/neonflick/goapi/service/query"
)

type impl struct {
	q query.Mongo
}

func New(q query.Mongo) blocklist.Repo {
	return &impl{q}
}

func (im *impl) FindAll(c ctx.Ctx) ([]*blocklist.Entry, error) {
	res := []*blocklist.Entry{}

	// to prevent scancol error
	qry := bson.M{"address": bson.M{"$exists": true}}

	if err := im.q.Search(c, domain.TableBlocklist, 0, 0, "-createdAt", qry, &res); err != nil {
		c.WithField("err", err).Error("q.Search failed")
		return nil, err
	}

	return res, nil
}

// FindOne returns nil without error when address is not blocked
func (im *impl) FindOne(c ctx.Ctx, address domain.Address) (*blocklist.Entry, error) {
	res := &blocklist.Entry{}

	if qry, err := mongoclient.MakeBsonM(&blocklist.Entry{Address: address}); err != nil {
		c.WithField("err", err).Error("mongoclient.MakeBsonM failed")
		return nil, err
	} else if err := im.q.FindOne(c, domain.TableBlocklist, qry, res); err == query.ErrNotFound {
		return nil, nil
	} else if err != nil {
		c.WithField("err", err).Error("q.FindOne failed")
		return nil, err
	}
	return res, nil
}

func (im *impl) Create(c ctx.Ctx, value blocklist.Entry) error {
	if err := im.q.Insert(c, domain.TableBlocklist, value); err == query.ErrDuplicateKey {
		return domain.ErrConflict
	} else if err != nil {
		c.WithField("err", err).Error("q.Insert failed")
		return err
	}
	return nil
}

func (im *impl) Delete(c ctx.Ctx, address domain.Address) error {
	if slr, err := mongoclient.MakeBsonM(blocklist.Entry{Address: address}); err != nil {
		c.WithField("err", err).Error("mongoclient.MakeBsonM failed")
		return err
	} else if err := im.q.Remove(c, domain.TableBlocklist, slr); err == query.ErrNotFound {
		return domain.ErrNotFound
	} else if err != nil {
		c.WithField("err", err).Error("q.Remove failed")
		return err
	}
	return nil
}

func (im *impl) EnsureIndexes(c ctx.Ctx) error {
	indexes := []query.Index{
		{Keys: bson.D{{Key: "address", Value: 1}}, Unique: true},
	}
	if err := im.q.EnsureIndexes(c, domain.TableBlocklist, indexes); err != nil {
		c.WithField("err", err).Error("q.EnsureIndexes failed")
		return err
	}
	return nil
}
