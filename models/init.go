package models

import "memorial/db"

func Init() {
	db.Instance.AutoMigrate(&User{})
	db.Instance.AutoMigrate(&Memorial{})
	db.Instance.AutoMigrate(&AccessGrant{})
	db.Instance.AutoMigrate(&LifeMoment{})
	db.Instance.AutoMigrate(&Memory{})
	db.Instance.AutoMigrate(&VisitorInteraction{})
}
