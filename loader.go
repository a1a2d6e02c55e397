package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/spf13/cast"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/niloufar07/Foggia-Road-Network/analyzer"
)

// LoadTables 读取功能性表与效率表，输入可以是csv文件或mongo集合
func LoadTables(
	mongoURI string,
	functionalityPath, efficiencyPath *Path,
) ([]analyzer.FunctionalityRecord, []analyzer.EfficiencyRecord) {
	var client *mongo.Client
	lazyClient := func() *mongo.Client {
		if client == nil {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			c, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
			if err != nil {
				log.Panicf("failed to connect to mongo: %v", err)
			}
			client = c
		}
		return client
	}
	defer func() {
		if client != nil {
			client.Disconnect(context.Background())
		}
	}()

	functionality, err := loadFunctionality(lazyClient, functionalityPath)
	if err != nil {
		log.Panicf("failed to load functionality table from %s: %v", functionalityPath, err)
	}
	efficiency, err := loadEfficiency(lazyClient, efficiencyPath)
	if err != nil {
		log.Panicf("failed to load efficiency table from %s: %v", efficiencyPath, err)
	}
	log.Infof("loaded %d functionality rows from %s, %d efficiency rows from %s",
		len(functionality), functionalityPath, len(efficiency), efficiencyPath)
	return functionality, efficiency
}

// 功能性表原始列为IOP与百分比字符串，加载后作percent清洗并统一连接键
func loadFunctionality(lazyClient func() *mongo.Client, p *Path) ([]analyzer.FunctionalityRecord, error) {
	var raw []analyzer.RawFunctionalityRecord
	if p.File != "" {
		f, err := os.Open(p.File)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		if err := gocsv.UnmarshalFile(f, &raw); err != nil {
			return nil, err
		}
	} else {
		docs, err := findAll(lazyClient(), p)
		if err != nil {
			return nil, err
		}
		for _, doc := range docs {
			iop, err := docString(doc, "IOP")
			if err != nil {
				return nil, err
			}
			functionality, err := docString(doc, "Functionality")
			if err != nil {
				return nil, err
			}
			raw = append(raw, analyzer.RawFunctionalityRecord{
				IOP:           iop,
				Functionality: functionality,
			})
		}
	}
	return analyzer.NormalizeFunctionality(raw)
}

func loadEfficiency(lazyClient func() *mongo.Client, p *Path) ([]analyzer.EfficiencyRecord, error) {
	var records []analyzer.EfficiencyRecord
	if p.File != "" {
		f, err := os.Open(p.File)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		if err := gocsv.UnmarshalFile(f, &records); err != nil {
			return nil, err
		}
		return records, nil
	}
	docs, err := findAll(lazyClient(), p)
	if err != nil {
		return nil, err
	}
	for _, doc := range docs {
		var rec analyzer.EfficiencyRecord
		if rec.BridgeIOP, err = docString(doc, "bridge_IOP"); err != nil {
			return nil, err
		}
		if rec.Highway, err = docString(doc, "highway"); err != nil {
			return nil, err
		}
		if rec.OsmID, err = docString(doc, "osm_id"); err != nil {
			return nil, err
		}
		if rec.BufferKm, err = docFloat(doc, "buffer_km"); err != nil {
			return nil, err
		}
		if rec.OriginalEfficiency, err = docFloat(doc, "original_efficiency"); err != nil {
			return nil, err
		}
		if rec.NewEfficiency, err = docFloat(doc, "new_efficiency"); err != nil {
			return nil, err
		}
		if rec.ChangeInEfficiency, err = docFloat(doc, "change_in_efficiency"); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func findAll(client *mongo.Client, p *Path) ([]bson.M, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	cur, err := client.Database(p.GetDb()).Collection(p.GetColl()).Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	docs := make([]bson.M, 0)
	for cur.Next(ctx) {
		var doc bson.M
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, cur.Err()
}

// mongo文档的数值单元可能以int32/int64/float等形式存储，统一用cast转换
func docString(doc bson.M, key string) (string, error) {
	raw, ok := doc[key]
	if !ok {
		return "", fmt.Errorf("missing field %s", key)
	}
	v, err := cast.ToStringE(raw)
	if err != nil {
		return "", fmt.Errorf("field %s: %v", key, err)
	}
	return v, nil
}

func docFloat(doc bson.M, key string) (float64, error) {
	raw, ok := doc[key]
	if !ok {
		return 0, fmt.Errorf("missing field %s", key)
	}
	v, err := cast.ToFloat64E(raw)
	if err != nil {
		return 0, fmt.Errorf("field %s: %v", key, err)
	}
	return v, nil
}
