package repository

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/neonflick/goapi/base/ctx"
	"github.com/neonflick/goapi/base/database/mongoclient"
	"github.com/neonflick/goapi/domain"
	"github.com/neonflick/goapi/domain/listing"
	"github.com/neonflick/goapi/service/query"
)

type impl struct {
	q query.Mongo
}

func New(q query.Mongo) listing.Repo {
	return &impl{q}
}

func (im *impl) Get(c ctx.Ctx, id string) (*listing.Listing, error) {
	doc := &listingDoc{}
	if err := im.q.FindOne(c, domain.TableListings, bson.M{"_id": id}, doc); err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		c.WithField("err", err).WithField("id", id).Error("q.FindOne failed")
		return nil, err
	}

	res, err := doc.toListing()
	if err != nil {
		c.WithField("err", err).WithField("id", id).Error("doc.toListing failed")
		return nil, err
	}
	return res, nil
}

func (im *impl) Insert(c ctx.Ctx, l *listing.Listing) error {
	doc, err := toDoc(l)
	if err != nil {
		c.WithField("err", err).Error("toDoc failed")
		return err
	}

	if err := im.q.Insert(c, domain.TableListings, doc); err == query.ErrDuplicateKey {
		return domain.ErrConflict
	} else if err != nil {
		c.WithField("err", err).WithField("id", l.Id).Error("q.Insert failed")
		return err
	}
	return nil
}

func (im *impl) ConditionalUpdate(c ctx.Ctx, id string, p listing.Predicate, m listing.Mutation) (*listing.Listing, error) {
	update, err := makeUpdate(m)
	if err != nil {
		c.WithField("err", err).Error("makeUpdate failed")
		return nil, err
	}

	doc := &listingDoc{}
	err = im.q.FindOneAndPatch(c, domain.TableListings, makeFilter(id, p), update, doc)
	if err == query.ErrNotFound {
		return nil, im.explainMiss(c, id, p)
	} else if err != nil {
		c.WithField("err", err).WithField("id", id).Error("q.FindOneAndPatch failed")
		return nil, err
	}

	res, err := doc.toListing()
	if err != nil {
		c.WithField("err", err).WithField("id", id).Error("doc.toListing failed")
		return nil, err
	}
	return res, nil
}

// explainMiss tells a vanished listing apart from a predicate that did not hold
func (im *impl) explainMiss(c ctx.Ctx, id string, p listing.Predicate) error {
	if p == (listing.Predicate{}) {
		return domain.ErrNotFound
	}

	n, err := im.q.Count(c, domain.TableListings, bson.M{"_id": id})
	if err != nil {
		c.WithField("err", err).WithField("id", id).Error("q.Count failed")
		return err
	} else if n == 0 {
		return domain.ErrNotFound
	}
	return listing.ErrConditionNotMet
}

func (im *impl) Delete(c ctx.Ctx, id string, p listing.Predicate) error {
	if err := im.q.Remove(c, domain.TableListings, makeFilter(id, p)); err == query.ErrNotFound {
		return im.explainMiss(c, id, p)
	} else if err != nil {
		c.WithField("err", err).WithField("id", id).Error("q.Remove failed")
		return err
	}
	return nil
}

func (im *impl) FindExpired(c ctx.Ctx, now time.Time, limit int) ([]*listing.Listing, error) {
	qry := bson.M{"expiresAt": bson.M{"$lte": now}}
	return im.search(c, qry, limit, "expiresAt")
}

func (im *impl) FindByOwner(c ctx.Ctx, owner domain.Address) ([]*listing.Listing, error) {
	qry := bson.M{"owner": owner}
	return im.search(c, qry, 0, "-createdAt")
}

func (im *impl) search(c ctx.Ctx, qry bson.M, limit int, sort string) ([]*listing.Listing, error) {
	docs := []*listingDoc{}
	if err := im.q.Search(c, domain.TableListings, 0, limit, sort, qry, &docs); err != nil {
		c.WithField("err", err).WithField("query", qry).Error("q.Search failed")
		return nil, err
	}

	res := make([]*listing.Listing, 0, len(docs))
	for _, doc := range docs {
		l, err := doc.toListing()
		if err != nil {
			c.WithField("err", err).WithField("id", doc.Id).Error("doc.toListing failed")
			return nil, err
		}
		res = append(res, l)
	}
	return res, nil
}

func (im *impl) EnsureIndexes(c ctx.Ctx) error {
	indexes := []query.Index{
		{Keys: bson.D{{Key: "owner", Value: 1}}},
		{Keys: bson.D{{Key: "expiresAt", Value: 1}}},
	}
	if err := im.q.EnsureIndexes(c, domain.TableListings, indexes); err != nil {
		c.WithField("err", err).Error("q.EnsureIndexes failed")
		return err
	}
	return nil
}

func makeFilter(id string, p listing.Predicate) bson.M {
	filter := bson.M{"_id": id}
	if p.Status != nil {
		filter["status"] = *p.Status
	}
	if p.WithoutTransaction != nil {
		filter["transactions.hash"] = bson.M{"$ne": *p.WithoutTransaction}
	}
	if p.ImageKey != nil {
		filter["imageKey"] = *p.ImageKey
	}
	return filter
}

func makeUpdate(m listing.Mutation) (bson.M, error) {
	set, err := toSetDoc(m)
	if err != nil {
		return nil, err
	}
	setM, err := mongoclient.MakeBsonM(set)
	if err != nil {
		return nil, err
	}

	update := bson.M{}
	if len(setM) > 0 {
		update["$set"] = setM
	}
	if m.UnsetCommission {
		update["$unset"] = bson.M{"commission": ""}
	}
	if m.IncConsumption != 0 {
		update["$inc"] = bson.M{"consumptionCount": m.IncConsumption}
	}
	if m.PushTransaction != nil {
		update["$push"] = bson.M{"transactions": *m.PushTransaction}
	}
	return update, nil
}
