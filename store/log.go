package store

import (
	"github.com/ZhuZhengyi/blockchain-go/logger"
	"github.com/ZhuZhengyi/blockchain-go/logs"
)

// log reports chain-store operations (creation, block insertion); minr
// reports the mining operation specifically.
var log, minr logs.Logger

func init() {
	log, _ = logger.Get(logger.SubsystemTags.BCDB)
	minr, _ = logger.Get(logger.SubsystemTags.MINR)
}
