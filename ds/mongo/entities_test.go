package mongo_test

import (
	"github.com/logistics-id/mongorepo/common"
)

type Person struct {
	common.Base `bson:",inline"`
	Name        string   `bson:"name"`
	Age         int      `bson:"age"`
	Hobbies     []string `bson:"hobbies"`
}

type Member struct {
	common.Base `bson:",inline"`
	Email       string `bson:"email"`
}

func (Member) CollectionName() string { return "Persons" }

// Vehicle is the shared base of a family stored in one collection.
type Vehicle struct {
	common.Base `bson:",inline"`
	Wheels      int `bson:"wheels"`
}

func (Vehicle) CollectionGroup() string { return "Vehicle" }

type Car struct {
	Vehicle `bson:",inline"`
	Doors   int `bson:"doors"`
}

type Truck struct {
	Vehicle `bson:",inline"`
	Payload int `bson:"payload"`
}

type Bike struct {
	Vehicle `bson:",inline"`
}

func (Bike) CollectionName() string { return "bikes" }

type Nameless struct {
	common.Base `bson:",inline"`
}

func (Nameless) CollectionName() string { return "" }

type Shipment struct {
	common.ObjectBase `bson:",inline"`
	Origin            string `bson:"origin"`
}

// Loose embeds Base without the inline tag, so its id would be stored under base._id.
type Loose struct {
	common.Base
	Name string `bson:"name"`
}
