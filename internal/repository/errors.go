package repository

import "errors"

// 見つからないときに各Repositoryが返す共通エラー
var ErrNotFound = errors.New("not found")
