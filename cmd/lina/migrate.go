package main

import (
	"github.com/spf13/cobra"

	"github.com/elethan/lina/pkg/database"
)

func migrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "执行数据库迁移",
		Long:  "postgres 执行内嵌 SQL 迁移；sqlite 使用 AutoMigrate 建表。",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap(*configPath)
			if err != nil {
				return err
			}
			defer a.close()

			return database.RunMigrations(a.db, a.cfg.Database.Driver, a.logger)
		},
	}
}
